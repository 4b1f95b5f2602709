package api

import (
	"strings"

	"github.com/go-faster/errors"
)

// grnPrefix は Graylog の GRN 接頭辞（エンティティ種別の前にコロンが4つ）
const grnPrefix = "grn::::"

// 共有サブシステムで使うエンティティ種別
const (
	EntityStream = "stream"
	EntityTeam   = "team"
	EntityUser   = "user"
)

// ToGRN はエンティティ種別とIDから GRN を組み立てる
// 例: ToGRN("stream", "abc123") -> "grn::::stream:abc123"
func ToGRN(entityType, id string) string {
	return grnPrefix + entityType + ":" + id
}

// ParseGRN は GRN をエンティティ種別とIDに分解する
func ParseGRN(grn string) (entityType, id string, err error) {
	rest, ok := strings.CutPrefix(grn, grnPrefix)
	if !ok {
		return "", "", errors.Errorf("invalid GRN %q", grn)
	}
	entityType, id, ok = strings.Cut(rest, ":")
	if !ok || entityType == "" || id == "" {
		return "", "", errors.Errorf("invalid GRN %q", grn)
	}
	return entityType, id, nil
}
