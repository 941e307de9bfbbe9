package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging      LoggingConfig      `yaml:"logging"`
	MongoURI     string             `yaml:"mongo_uri"`
	MongoDBName  string             `yaml:"mongo_db_name"`
	GeminiModel  string             `yaml:"gemini_model"`
	Analyzer     AnalyzerConfig     `yaml:"analyzer"`
	GenQuota     GenQuotaConfig     `yaml:"generation_quota"`
	PublishQuota PublishQuotaConfig `yaml:"publish_quota"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AnalyzerConfig tunes the humanize/plagiarism analysis flow.
type AnalyzerConfig struct {
	// TimeoutSeconds bounds the whole analysis including LLM calls and
	// source fetches. 0 means the default of 60 seconds.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// MinDurationSeconds is the floor the API enforces before responding,
	// regardless of how quickly the analysis finished. 0 means 6 seconds.
	MinDurationSeconds int `yaml:"min_duration_seconds"`

	// MaxSources caps how many reference pages are fetched per request.
	MaxSources int `yaml:"max_sources"`

	// SimilarityThreshold is the token-overlap ratio above which a source
	// counts as a plagiarism hit.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// GenQuotaConfig 는 블로그 생성/휴머나이즈용 LLM 호출에 대한 속도/일일 한도를 정의한다.
type GenQuotaConfig struct {
	// RequestsPerMinute 는 LLM 호출에 대한 분당 최대 요청 수이다. 0 이하면 제한 없음.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 LLM 호출에 대한 일일 최대 요청 수이다. 0 이하면 제한 없음.
	RequestsPerDay int `yaml:"requests_per_day"`
}

// PublishQuotaConfig limits how many blogs a basic-plan user can publish
// per calendar month. Paid plans are unlimited.
type PublishQuotaConfig struct {
	BasicPostsPerMonth int `yaml:"basic_posts_per_month"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.MongoURI = uri
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
