package util

import "strings"

// SplitCSV 拆分逗号分隔字段（Categories/SubTopics/PostIDs 的存储格式）
func SplitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func JoinCSV(items []string) string {
	return strings.Join(items, ",")
}
