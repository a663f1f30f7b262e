package dto

// AdminStatsResponse is the dashboard snapshot.
type AdminStatsResponse struct {
	Users            int64            `json:"users"`
	Sessions         int64            `json:"sessions"`
	SessionsByStatus map[string]int64 `json:"sessions_by_status"`
	Activities       int64            `json:"activities"`
	Submissions      int64            `json:"submissions"`
	Votes            int64            `json:"votes"`
	Participants     int64            `json:"participants"`
}

// AuditListRequest pages through the audit log.
type AuditListRequest struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}
