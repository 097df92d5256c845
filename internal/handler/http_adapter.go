package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
)

// HTTPTriggerRequest represents the structure of the JSON payload for HTTP triggers.
type HTTPTriggerRequest struct {
	Data struct {
		Req struct {
			URL             string              `json:"Url"`
			Method          string              `json:"Method"`
			Query           map[string]string   `json:"Query"`
			Headers         map[string][]string `json:"Headers"`
			Params          map[string]string   `json:"Params"`
			Body            string              `json:"Body"`
			IsBase64Encoded bool                `json:"isBase64Encoded"`
		} `json:"req"`
	} `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// HTTPTriggerResponse represents the structure of the JSON response for HTTP triggers.
type HTTPTriggerResponse struct {
	Outputs struct {
		Res struct {
			StatusCode int               `json:"statusCode"`
			Headers    map[string]string `json:"headers"`
			Body       string            `json:"body"`
		} `json:"res"`
	} `json:"Outputs"`
	Logs        []string `json:"Logs,omitempty"`
	ReturnValue any      `json:"ReturnValue,omitempty"`
}

// HandleHTTPTrigger adapts the Azure Functions JSON POST envelope to a
// standard HTTP request/response pair. It wraps the provided Next handler
// (usually the ServeMux).
func (d *Dependencies) HandleHTTPTrigger(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var invokeReq HTTPTriggerRequest
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			slog.Error("failed to read HTTP trigger body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}

		if err := json.Unmarshal(bodyBytes, &invokeReq); err != nil {
			slog.Error("failed to unmarshal HTTP trigger request", "error", err)
			http.Error(w, "Failed to unmarshal request", http.StatusBadRequest)
			return
		}

		reqData := invokeReq.Data.Req
		slog.Info("processing wrapped HTTP request", "method", reqData.Method, "url", reqData.URL)

		// The body may arrive base64 encoded; some hosts don't set the
		// isBase64Encoded flag but send base64 anyway, so try decoding.
		var bodyReader io.Reader
		if reqData.Body != "" {
			inner := []byte(reqData.Body)
			if decoded, err := base64.StdEncoding.DecodeString(reqData.Body); err == nil {
				inner = decoded
			}
			bodyReader = bytes.NewReader(inner)
		} else {
			bodyReader = http.NoBody
		}

		newReq, err := http.NewRequest(reqData.Method, reqData.URL, bodyReader)
		if err != nil {
			slog.Error("failed to create internal request", "error", err)
			http.Error(w, "Failed to create internal request", http.StatusInternalServerError)
			return
		}

		for k, v := range reqData.Headers {
			for _, val := range v {
				newReq.Header.Add(k, val)
			}
		}

		// Use httptest.ResponseRecorder to capture the response
		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, newReq)

		respResult := recorder.Result()
		respBodyBytes, _ := io.ReadAll(respResult.Body)
		respResult.Body.Close()

		respHeaders := make(map[string]string)
		for k, v := range respResult.Header {
			respHeaders[k] = v[0] // Simplified header handling
		}

		jsonResp := HTTPTriggerResponse{}
		jsonResp.Outputs.Res.StatusCode = respResult.StatusCode
		jsonResp.Outputs.Res.Headers = respHeaders
		jsonResp.Outputs.Res.Body = string(respBodyBytes)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(jsonResp); err != nil {
			slog.Error("failed to encode HTTP trigger response", "error", err)
		}
	}
}
