package dto

import "time"

type SavePromptRequest struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

type DeletePromptRequest struct {
	ID string `json:"id"`
}

type RunPromptRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type PromptData struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PromptResponse struct {
	OK     bool        `json:"ok"`
	Prompt *PromptData `json:"prompt,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type PromptListResponse struct {
	OK      bool         `json:"ok"`
	Prompts []PromptData `json:"prompts"`
}

type RunPromptResponse struct {
	OK       bool   `json:"ok"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

type GenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}
