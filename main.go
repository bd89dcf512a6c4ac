package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.SetPrefix("ml/macrolog-go-api: ")
	log.SetFlags(0)

	// .env is optional in production — env vars may come from the platform.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	h := &Handler{
		db:            getDBPool(),
		openAIBaseURL: openAIBaseURL(),
	}

	fmt.Println("Starting gin app...")

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	router.Run("localhost:" + port)
}

// openAIBaseURL returns the OpenAI API base, overridable for tests/proxies.
func openAIBaseURL() string {
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		return u
	}
	return "https://api.openai.com"
}
