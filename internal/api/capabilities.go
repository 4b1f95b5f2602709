package api

import (
	"maps"
	"slices"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// PermissionView はストリームの閲覧権限
const PermissionView = "view"

const fieldSelectedGranteeCapabilities = "selected_grantee_capabilities"

// Capabilities は1つのエンティティに付与された共有の全体（GRN -> 権限レベル）
// 部分更新APIは存在しないため、常に全体を取得して全体を送信する
type Capabilities map[string]string

// Clone はコピーを返す。nil の場合は空のマップを返す
func (c Capabilities) Clone() Capabilities {
	out := make(Capabilities, len(c))
	maps.Copy(out, c)
	return out
}

// Grant は teams に permission を付与した新しいマッピングを返す
// 既存のエントリは保持し、同じチームのエントリは上書きする。current は変更しない
func Grant(current Capabilities, permission string, teams []Team) Capabilities {
	next := current.Clone()
	for _, t := range teams {
		next[ToGRN(EntityTeam, t.ID)] = permission
	}
	return next
}

// Revoke は teams のエントリを取り除いた新しいマッピングを返す
// エントリが存在しないチームは無視する。current は変更しない
func Revoke(current Capabilities, teams []Team) Capabilities {
	next := current.Clone()
	for _, t := range teams {
		delete(next, ToGRN(EntityTeam, t.ID))
	}
	return next
}

// GRNs は GRN をソートして返す
func (c Capabilities) GRNs() []string {
	return slices.Sorted(maps.Keys(c))
}

// decodeSelectedCapabilities は prepare のレスポンスから
// selected_grantee_capabilities を取り出す。他のフィールドは読み飛ばす
func decodeSelectedCapabilities(data []byte) (Capabilities, error) {
	caps := Capabilities{}
	d := jx.DecodeBytes(data)
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		if string(key) != fieldSelectedGranteeCapabilities {
			return d.Skip()
		}
		if d.Next() == jx.Null {
			return d.Null()
		}
		return d.ObjBytes(func(d *jx.Decoder, grn []byte) error {
			level, err := d.Str()
			if err != nil {
				return errors.Wrapf(err, "capability of %s", grn)
			}
			caps[string(grn)] = level
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode shares")
	}
	return caps, nil
}

// encodeSelectedCapabilities は送信用ペイロードを組み立てる
// キー順を固定して出力する
func encodeSelectedCapabilities(caps Capabilities) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart(fieldSelectedGranteeCapabilities)
	e.ObjStart()
	for _, grn := range caps.GRNs() {
		e.FieldStart(grn)
		e.Str(caps[grn])
	}
	e.ObjEnd()
	e.ObjEnd()
	return e.Bytes()
}
