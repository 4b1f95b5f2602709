package config

import (
	"context"
	"sync"

	"github.com/yacchi/jubako"
	"github.com/yacchi/jubako/format/yaml"
	"github.com/yacchi/jubako/layer"
	"github.com/yacchi/jubako/layer/env"
	"github.com/yacchi/jubako/layer/mapdata"
	"github.com/yacchi/jubako/source/bytes"
	"github.com/yacchi/jubako/source/fs"
)

// Store は設定のレイヤー管理を行うjubakoベースの実装
// 設定は読み取り専用で、ファイルへの書き戻しは行わない
type Store struct {
	mu sync.RWMutex

	store *jubako.Store[ResolvedConfig]

	userConfigPath string
}

// newConfigStore は新しいStoreを作成する
// ファイルが存在しない場合は空として扱う
func newConfigStore() (*Store, error) {
	store := jubako.New[ResolvedConfig]()

	// Layer 1: Defaults (embedded YAML)
	if err := store.Add(
		layer.New(
			LayerDefaults,
			bytes.FromString(string(defaultConfigYAML)),
			yaml.New(),
		),
		jubako.WithReadOnly(),
		jubako.WithNoWatch(),
	); err != nil {
		return nil, err
	}

	// Layer 2: User config (~/.config/pandalog/config.yaml)
	userConfigPath, err := configPath()
	if err != nil {
		return nil, err
	}
	if err := store.Add(
		layer.New(
			LayerUser,
			fs.New(userConfigPath),
			yaml.New(),
		),
		jubako.WithOptional(),
		jubako.WithReadOnly(),
	); err != nil {
		return nil, err
	}

	// Layer 3: Environment variables (GRAYLOG_HOST, GRAYLOG_TOKEN, ...)
	if err := store.Add(
		env.NewWithAutoSchema(LayerEnv, EnvPrefix,
			env.WithEnvironFunc(expandEnvAliases),
		),
		jubako.WithReadOnly(),
	); err != nil {
		return nil, err
	}

	// Layer 4: Command-line flags
	// 静的に空のレイヤーを追加。SetFlagsLayer で値を設定
	if err := store.Add(
		mapdata.New(LayerArgs, nil),
	); err != nil {
		return nil, err
	}

	return &Store{
		store:          store,
		userConfigPath: userConfigPath,
	}, nil
}

// LoadAll は全レイヤーを読み込む
func (s *Store) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

// SetFlagsLayer はコマンドラインフラグからのオーバーライドを設定する
func (s *Store) SetFlagsLayer(options []jubako.SetOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(LayerArgs, options...)
}

// Resolved は解決済み設定を返す
func (s *Store) Resolved() *ResolvedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resolved := s.store.Get()
	return &resolved
}

// Graylog は接続設定を取得する
func (s *Store) Graylog() *ResolvedGraylog {
	return &s.Resolved().Graylog
}

// HTTP はHTTP設定を取得する
func (s *Store) HTTP() *ResolvedHTTP {
	return &s.Resolved().HTTP
}

// Display は表示設定を取得する
func (s *Store) Display() *ResolvedDisplay {
	return &s.Resolved().Display
}

// GetUserConfigPath はユーザー設定ファイルのパスを返す
func (s *Store) GetUserConfigPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userConfigPath
}

// ====================
// グローバルストア管理
// ====================

var (
	globalStore   *Store
	globalStoreMu sync.RWMutex
)

// Load はグローバル設定ストアを初期化してロードする
// すでにロード済みの場合は既存のストアを返す
func Load(ctx context.Context) (*Store, error) {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()

	if globalStore != nil {
		return globalStore, nil
	}

	store, err := newConfigStore()
	if err != nil {
		return nil, err
	}

	if err := store.LoadAll(ctx); err != nil {
		return nil, err
	}

	globalStore = store
	return globalStore, nil
}

// ResetConfig はグローバル設定ストアをリセットする（テスト用）
func ResetConfig() {
	globalStoreMu.Lock()
	defer globalStoreMu.Unlock()
	globalStore = nil
}
