package configuration

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/kelseyhightower/envconfig"
)

type Settings struct {
	Database    DatabaseSettings    `yaml:"database"`
	Application ApplicationSettings `yaml:"application"`
	Azure       AzureSettings       `yaml:"azure"`
}

type DatabaseSettings struct {
	Username   string `yaml:"username" envconfig:"DB_USERNAME"`
	Password   string `yaml:"password" envconfig:"DB_PASSWORD"`
	Host       string `yaml:"host" envconfig:"DB_HOST"`
	Port       uint16 `yaml:"port" envconfig:"DB_PORT"`
	DbName     string `yaml:"db_name"`
	RequireSsl bool   `yaml:"require_ssl"`
}

type ApplicationSettings struct {
	Port           uint16   `yaml:"port" envconfig:"PORT"`
	StorageBackend string   `yaml:"storage_backend" envconfig:"STORAGE_BACKEND"`
	StaticDir      string   `yaml:"static_dir" envconfig:"STATIC_DIR"`
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

type AzureSettings struct {
	BlobStorageEndpoint  string `yaml:"blob_storage_endpoint"`
	BlobConnectionString string `yaml:"blob_connection_string" envconfig:"AZURE_BLOB_CONNECTION_STRING"`
	BlobContainer        string `yaml:"blob_container"`
}

// ReadConfiguration loads the layered settings from the given directory:
// base.yml first, then the ${ENVIRONMENT} overlay (local by default),
// then environment variables on top.
func ReadConfiguration(path string) Settings {
	var settings Settings

	readFile(path, &settings, "base")

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "local"
	}
	readFile(path, &settings, environment)

	readEnv(&settings)
	return settings
}

func readFile(path string, settings *Settings, name string) {
	f, err := os.Open(fmt.Sprintf("%s/%s.yml", path, name))
	if err != nil {
		panic(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(settings)
	if err != nil {
		panic(err)
	}
}

func readEnv(settings *Settings) {
	err := envconfig.Process("", settings)
	if err != nil {
		panic(err)
	}
}
