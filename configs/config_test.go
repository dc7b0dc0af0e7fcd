package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// テスト用の環境変数を設定
	testCases := map[string]string{
		"PORT":                 "3001",
		"ENVIRONMENT":          "test",
		"SALES_DATA_PATH":      "/tmp/sales_data.json",
		"SAMPLE_RECORD_COUNT":  "25",
		"CORS_ALLOWED_ORIGINS": "http://localhost:5173",
	}

	// 環境変数を設定
	for key, value := range testCases {
		os.Setenv(key, value)
	}

	// テスト後にクリーンアップ
	defer func() {
		for key := range testCases {
			os.Unsetenv(key)
		}
	}()

	// 設定を読み込み
	cfg := LoadConfig()

	// 検証
	if cfg.Port != "3001" {
		t.Errorf("Expected Port to be '3001', got '%s'", cfg.Port)
	}

	if cfg.Environment != "test" {
		t.Errorf("Expected Environment to be 'test', got '%s'", cfg.Environment)
	}

	if cfg.SalesDataPath != "/tmp/sales_data.json" {
		t.Errorf("Expected SalesDataPath to be '/tmp/sales_data.json', got '%s'", cfg.SalesDataPath)
	}

	if cfg.SampleRecordCount != 25 {
		t.Errorf("Expected SampleRecordCount to be 25, got %d", cfg.SampleRecordCount)
	}

	if cfg.CORSAllowedOrigins != "http://localhost:5173" {
		t.Errorf("Expected CORSAllowedOrigins to be 'http://localhost:5173', got '%s'", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	// 環境変数をクリア
	vars := []string{
		"PORT", "ENVIRONMENT", "SALES_DATA_PATH",
		"SAMPLE_RECORD_COUNT", "CORS_ALLOWED_ORIGINS",
	}

	for _, v := range vars {
		os.Unsetenv(v)
	}

	// 設定を読み込み
	cfg := LoadConfig()

	// デフォルト値の検証
	if cfg.Port != "8080" {
		t.Errorf("Expected default Port to be '8080', got '%s'", cfg.Port)
	}

	if cfg.Environment != "development" {
		t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
	}

	if cfg.SalesDataPath != "data/sales_data.json" {
		t.Errorf("Expected default SalesDataPath to be 'data/sales_data.json', got '%s'", cfg.SalesDataPath)
	}

	if cfg.SampleRecordCount != 50 {
		t.Errorf("Expected default SampleRecordCount to be 50, got %d", cfg.SampleRecordCount)
	}
}

func TestGetEnvIntNonNumeric(t *testing.T) {
	os.Setenv("SAMPLE_RECORD_COUNT", "not-a-number")
	defer os.Unsetenv("SAMPLE_RECORD_COUNT")

	cfg := LoadConfig()

	// 数値でない場合はデフォルト値にフォールバック
	if cfg.SampleRecordCount != 50 {
		t.Errorf("Expected SampleRecordCount to fall back to 50, got %d", cfg.SampleRecordCount)
	}
}
