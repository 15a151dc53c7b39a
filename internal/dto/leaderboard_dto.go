package dto

type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	XP        int     `json:"xp"`
	RankTitle string  `json:"rank_title"`
}
