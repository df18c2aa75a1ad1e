package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultServerPortDoesNotCollideWithWeaviate(t *testing.T) {
	settingDefaultConfig()

	serverPort := viper.GetString("server.port")
	weaviateURL := viper.GetString("weaviate.url")

	if serverPort == "" {
		t.Fatal("server.port default is empty")
	}
	if strings.HasSuffix(weaviateURL, ":"+serverPort) {
		t.Errorf("server.port default %q collides with weaviate.url default %q", serverPort, weaviateURL)
	}
}
