// Command contentproxy holds the generator API key on the server and exposes
// a keyless generateContent endpoint for game clients.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/milk9111/bossgen/content/gemini"
)

func main() {
	addr := flag.String("addr", "", "listen address (default 0.0.0.0:$PORT or 0.0.0.0:8080)")
	upstream := flag.String("upstream", gemini.DefaultEndpoint, "generateContent endpoint")
	keyEnv := flag.String("key-env", gemini.DefaultKeyEnv, "environment variable holding the API key")
	timeout := flag.Duration("timeout", 10*time.Second, "upstream request timeout")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)

	client := gemini.NewClient(*upstream, *keyEnv)
	if client.APIKey == "" {
		log.Fatalf("contentproxy: %s is not set", *keyEnv)
	}

	if *addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		*addr = "0.0.0.0:" + port
	}

	r := newRouter(client, *timeout)
	log.Printf("contentproxy: listening on %s, upstream %s", *addr, *upstream)
	if err := r.Run(*addr); err != nil {
		log.Fatalf("contentproxy: %v", err)
	}
}
