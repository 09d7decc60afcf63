package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeEmail 去除首尾空白并将域名部分转为小写，本地部分保持原样
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// ParseIDList 解析逗号分隔的ID列表，如 "1,2,3"；空字符串返回空列表
func ParseIDList(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("无效的ID: %q", part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// ParseFlag 解析 "1"/"0"、"true"/"false" 形式的查询参数
func ParseFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0, nil
	}
	return strconv.ParseBool(raw)
}
