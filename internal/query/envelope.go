package query

// Page identifies one page of results.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the neighboring pages when they exist.
type Pagination struct {
	Previous *Page `json:"previous,omitempty"`
	Next     *Page `json:"next,omitempty"`
}

// Envelope is the standard list response wrapper.
type Envelope struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

// NewEnvelope wraps one page of records with pagination metadata derived
// from the spec and the total match count.
func NewEnvelope(spec *Spec, total int, data []map[string]any) *Envelope {
	if data == nil {
		data = []map[string]any{}
	}
	p := &Pagination{}
	if spec.Page > 1 {
		p.Previous = &Page{Page: spec.Page - 1, Limit: spec.Limit}
	}
	if spec.Page*spec.Limit < total {
		p.Next = &Page{Page: spec.Page + 1, Limit: spec.Limit}
	}
	env := &Envelope{Success: true, Count: len(data), Data: data}
	if p.Previous != nil || p.Next != nil {
		env.Pagination = p
	}
	return env
}
