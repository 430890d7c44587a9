package task

import "storefront/search/internal/domain"

const SearchEventTaskType = "SearchEventTask"

type SearchEventTask struct {
	Event domain.SearchEvent `json:"event"`
}

func (t *SearchEventTask) TaskType() string {
	return SearchEventTaskType
}

func (t *SearchEventTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
