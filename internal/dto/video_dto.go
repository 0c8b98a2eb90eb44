package dto

type VideoDTO struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
}

type VideoListResponse struct {
	Course   string     `json:"course"`
	Query    string     `json:"query"`
	Fallback bool       `json:"fallback"`
	Videos   []VideoDTO `json:"videos"`
}
