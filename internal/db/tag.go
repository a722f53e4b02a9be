package db

import "sort"

// Tag is a category label attached to exercises, e.g. "outdoor".
type Tag struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// TagNames 返回按名称排序的标签名列表
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	sort.Strings(names)
	return names
}
