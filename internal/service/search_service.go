package service

import (
	"log"

	"anoa.com/campquest/internal/model"
	"github.com/meilisearch/meilisearch-go"
)

const (
	indexBlogPosts = "blog_posts"
	indexCampaigns = "campaigns"
)

// SearchService mirrors blog posts and campaigns into Meilisearch. Indexing
// is asynchronous and best effort; search results lagging a write is
// acceptable, failed requests are logged and dropped.
type SearchService interface {
	IndexPostAsync(post *model.BlogPost)
	DeletePostAsync(id string)
	IndexCampaignAsync(campaign *model.Campaign)
	DeleteCampaignAsync(id string)
	Search(query string, limit int64) (map[string][]map[string]any, error)
}

type searchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	sortable := []string{"created_at"}
	if _, err := s.client.Index(indexBlogPosts).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to update %s sortable attributes: %v", indexBlogPosts, err)
	}
	if _, err := s.client.Index(indexCampaigns).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("failed to update %s sortable attributes: %v", indexCampaigns, err)
	}

	filterable := []any{"status"}
	if _, err := s.client.Index(indexCampaigns).UpdateFilterableAttributes(&filterable); err != nil {
		log.Printf("failed to update %s filterable attributes: %v", indexCampaigns, err)
	}

	log.Println("Meilisearch indexes initialized")
}

type postDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type campaignDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *searchService) IndexPostAsync(post *model.BlogPost) {
	doc := postDoc{
		ID:        post.ID.String(),
		Title:     post.Title,
		Slug:      post.Slug,
		Content:   post.Content,
		CreatedAt: post.CreatedAt.Unix(),
	}
	go func() {
		if !post.Published {
			// Unpublished posts must not be searchable
			if _, err := s.client.Index(indexBlogPosts).DeleteDocument(doc.ID); err != nil {
				log.Printf("failed to remove unpublished post %s from index: %v", doc.ID, err)
			}
			return
		}
		if _, err := s.client.Index(indexBlogPosts).AddDocuments([]postDoc{doc}, nil); err != nil {
			log.Printf("failed to index blog post %s: %v", doc.ID, err)
		}
	}()
}

func (s *searchService) DeletePostAsync(id string) {
	go func() {
		if _, err := s.client.Index(indexBlogPosts).DeleteDocument(id); err != nil {
			log.Printf("failed to delete blog post %s from index: %v", id, err)
		}
	}()
}

func (s *searchService) IndexCampaignAsync(campaign *model.Campaign) {
	doc := campaignDoc{
		ID:          campaign.ID.String(),
		Title:       campaign.Title,
		Slug:        campaign.Slug,
		Description: campaign.Description,
		Status:      campaign.Status,
		CreatedAt:   campaign.CreatedAt.Unix(),
	}
	go func() {
		if _, err := s.client.Index(indexCampaigns).AddDocuments([]campaignDoc{doc}, nil); err != nil {
			log.Printf("failed to index campaign %s: %v", doc.ID, err)
		}
	}()
}

func (s *searchService) DeleteCampaignAsync(id string) {
	go func() {
		if _, err := s.client.Index(indexCampaigns).DeleteDocument(id); err != nil {
			log.Printf("failed to delete campaign %s from index: %v", id, err)
		}
	}()
}

func (s *searchService) Search(query string, limit int64) (map[string][]map[string]any, error) {
	if limit <= 0 {
		limit = 10
	}

	results := make(map[string][]map[string]any)

	for _, index := range []string{indexBlogPosts, indexCampaigns} {
		resp, err := s.client.Index(index).Search(query, &meilisearch.SearchRequest{Limit: limit})
		if err != nil {
			return nil, err
		}
		hits := make([]map[string]any, 0, len(resp.Hits))
		for _, hit := range resp.Hits {
			var doc map[string]any
			if err := hit.Decode(&doc); err == nil {
				hits = append(hits, doc)
			}
		}
		results[index] = hits
	}

	return results, nil
}
