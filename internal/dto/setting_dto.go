package dto

type UpsertSettingInput struct {
	Key   string `json:"key" binding:"required,max=100"`
	Value string `json:"value" binding:"required"`
}
