package helpers

import (
	"fmt"
	"strconv"
	"time"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseDate accepts RFC3339 timestamps and bare dates.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s", s)
}

type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

func ParsePagination(pageStr, limitStr string) (Pagination, error) {
	page, err := StringToInt(pageStr)
	if err != nil || page < 1 {
		return Pagination{}, fmt.Errorf("invalid page number")
	}

	limit, err := StringToInt(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		return Pagination{}, fmt.Errorf("invalid limit")
	}

	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}, nil
}

func TotalPages(totalCount int64, limit int) int64 {
	return (totalCount + int64(limit) - 1) / int64(limit)
}
