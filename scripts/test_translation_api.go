package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:3000/api"
	// Paste a fresh access token from POST /auth/v1/login before running.
	userToken = "PASTE_ACCESS_TOKEN_HERE"
	// The provider to exercise; its key must be saved via /credential/v1.
	providerName = "gemini-flash"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout; video calls can take a while
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Translation Pipeline API Test\n")

	// 1. Health check (unauthenticated)
	color.Yellow("\n1. Health Check")
	resp, body, err := sendRequest("GET", "", "", nil)
	if err != nil {
		color.Red("Server not reachable: %v", err)
		os.Exit(1)
	}
	_ = body
	color.Green("Status: %s", resp.Status)

	// 2. Who am I
	color.Yellow("\n2. Get Current User")
	resp, body, err = sendRequest("GET", "/auth/v1/me", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var meResp map[string]interface{}
	json.Unmarshal(body, &meResp)
	prettyPrint(meResp)

	// 3. List configured credentials
	color.Yellow("\n3. List Provider Credentials")
	resp, body, err = sendRequest("GET", "/credential/v1", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var credResp map[string]interface{}
	json.Unmarshal(body, &credResp)
	prettyPrint(credResp)

	// 4. Text to gloss
	color.Yellow("\n4. Text → Gloss")
	glossReq := map[string]interface{}{
		"provider": providerName,
		"text":     "I am going to the store tomorrow morning",
	}
	resp, body, err = sendRequest("POST", "/translate/v1/text-to-gloss", userToken, glossReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var glossResp map[string]interface{}
		json.Unmarshal(body, &glossResp)
		if data, ok := glossResp["data"].(map[string]interface{}); ok {
			fmt.Printf("Gloss: %v\n", data["gloss"])
		} else {
			prettyPrint(glossResp)
		}
	}

	// 5. Text to summary
	color.Yellow("\n5. Text → Summary")
	summaryReq := map[string]interface{}{
		"provider": providerName,
		"text": "The meeting covered the quarterly results, the new hiring plan " +
			"and the upcoming office move. Results were above target.",
	}
	resp, body, err = sendRequest("POST", "/translate/v1/text-to-summary", userToken, summaryReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var sumResp map[string]interface{}
		json.Unmarshal(body, &sumResp)
		if data, ok := sumResp["data"].(map[string]interface{}); ok {
			fmt.Printf("Summary: %s\n", data["summary"])
		} else {
			prettyPrint(sumResp)
		}
	}

	// 6. Add a knowledge entry with an inline synthetic clip
	color.Yellow("\n6. Add Knowledge Entry")
	clip := base64.StdEncoding.EncodeToString([]byte("synthetic clip " + fmt.Sprint(os.Getpid())))
	addReq := map[string]interface{}{
		"translation": "Good morning",
		"gloss":       "GOOD MORNING",
		"category":    "greetings",
		"confidence":  95,
		"video_data":  clip,
	}
	var entryID string
	resp, body, err = sendRequest("POST", "/knowledge/v1", userToken, addReq)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var addResp map[string]interface{}
		json.Unmarshal(body, &addResp)
		if data, ok := addResp["data"].(map[string]interface{}); ok {
			if id, ok := data["entry_id"].(string); ok {
				entryID = id
				fmt.Printf("Created Entry ID: %s\n", entryID)
			}
		}
	}

	// 7. Semantic search over the knowledge base
	color.Yellow("\n7. Knowledge Search: 'morning greeting'")
	resp, body, err = sendRequest("GET", "/knowledge/v1/search?q=morning+greeting&limit=5", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var searchResp map[string]interface{}
		json.Unmarshal(body, &searchResp)
		if data, ok := searchResp["data"].(map[string]interface{}); ok {
			if results, ok := data["results"].([]interface{}); ok {
				fmt.Printf("Results: %d\n", len(results))
			}
		} else {
			prettyPrint(searchResp)
		}
	}

	// 8. Recent history (feeds conversation context)
	color.Yellow("\n8. Recent Translation History")
	resp, body, err = sendRequest("GET", "/history/v1/recent?limit=5", userToken, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var histResp map[string]interface{}
		json.Unmarshal(body, &histResp)
		prettyPrint(histResp)
	}

	// 9. Cleanup: remove the test knowledge entry
	if entryID != "" {
		color.Yellow("\n9. Cleanup: Delete Knowledge Entry")
		resp, body, err = sendRequest("DELETE", "/knowledge/v1/"+entryID, userToken, nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var delResp map[string]interface{}
			json.Unmarshal(body, &delResp)
			prettyPrint(delResp)
		}
	} else {
		color.Red("\n[SKIP] Cleanup skipped (no entry ID returned from create)")
	}

	color.Cyan("\n✅ Test Sequence Complete")
}
