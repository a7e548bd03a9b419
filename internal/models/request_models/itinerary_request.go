package request_models

import (
	"bytes"
	"encoding/json"
)

// ItineraryRequest is the body of both create and update. Update replaces
// every field, activities included.
type ItineraryRequest struct {
	Title      string            `json:"title" binding:"required,notblank"`
	StartDate  string            `json:"startDate" binding:"required,iso8601"`
	EndDate    string            `json:"endDate" binding:"required,iso8601"`
	Budget     Amount            `json:"budget" binding:"required,decimal"`
	Location   string            `json:"location" binding:"required,notblank"`
	Activities []ActivityRequest `json:"activities" binding:"omitempty,dive"`
}

type ActivityRequest struct {
	Day         int    `json:"day" binding:"required,min=1"`
	Name        string `json:"name" binding:"required,notblank"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// Amount accepts a JSON number or a numeric string.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

type ListItinerariesQuery struct {
	Sort  string `form:"sort" binding:"omitempty,oneof=createdAt startDate budget title"`
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
}

type SearchItinerariesQuery struct {
	Q string `form:"q" binding:"required,notblank"`
}
