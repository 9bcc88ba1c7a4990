package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Columns rate-card listings may sort on. Anything else falls back to the
// default card ordering so callers cannot sort on unindexed fields.
var sortableColumns = map[string]string{
	"courier":    "courier",
	"mode":       "mode",
	"zone":       "zone",
	"slab":       "slab_kg",
	"base_rate":  "base_rate",
	"updated_at": "updated_at",
}

type PaginationParams struct {
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"page_size" form:"page_size"`
	Sort     string `json:"sort" form:"sort"`
	Order    string `json:"order" form:"order"`
}

type PaginationMeta struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	Total        int64 `json:"total"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

func GetPaginationParams(c *gin.Context) *PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	order := c.DefaultQuery("order", "asc")
	if order != "asc" && order != "desc" {
		order = "asc"
	}

	return &PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Sort:     c.Query("sort"),
		Order:    order,
	}
}

// GetSortOptions builds the find options for one page of rate-card rows.
// The default ordering walks the card the way sellers read it: courier,
// then mode, then zone, then weight slab. Explicit sorts get an _id
// tiebreak so pages stay stable across requests.
func (p *PaginationParams) GetSortOptions() *options.FindOptions {
	opts := options.Find()
	opts.SetSkip(int64((p.Page - 1) * p.PageSize))
	opts.SetLimit(int64(p.PageSize))

	direction := 1
	if p.Order == "desc" {
		direction = -1
	}

	if column, ok := sortableColumns[p.Sort]; ok {
		opts.SetSort(bson.D{{Key: column, Value: direction}, {Key: "_id", Value: 1}})
		return opts
	}

	opts.SetSort(bson.D{
		{Key: "courier", Value: direction},
		{Key: "mode", Value: direction},
		{Key: "zone", Value: direction},
		{Key: "slab_kg", Value: direction},
	})
	return opts
}

func CreatePaginationMeta(params *PaginationParams, total int64) *PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	meta := &PaginationMeta{
		Page:        params.Page,
		PageSize:    params.PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}

	if meta.HasNext {
		nextPage := params.Page + 1
		meta.NextPage = &nextPage
	}

	if meta.HasPrevious {
		previousPage := params.Page - 1
		meta.PreviousPage = &previousPage
	}

	return meta
}
