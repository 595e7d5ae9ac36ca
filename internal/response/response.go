package response

type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

type APIResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
}

func Success(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func List(data interface{}, p Pagination) APIResponse {
	return APIResponse{Success: true, Data: data, Pagination: &p}
}

func Deleted(msg string) APIResponse {
	return APIResponse{Success: true, Message: msg}
}

func Error(msg string) APIResponse {
	return APIResponse{Success: false, Message: msg}
}

// NewPagination derives page counts from a total record count.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Current: page, Pages: pages, Total: total}
}
