package http

import (
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/nazarijbeketovv/tech-assignment-payments/platform/logger"
)

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

type errorRes struct {
	code int
	body errorResponse
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	payload, err := sonic.Marshal(v)
	if err != nil {
		logger.Error(r.Context(), "marshal response", logger.ErrorF(err))
		code = http.StatusInternalServerError
		payload = []byte(`{"error":"internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(payload); err != nil {
		logger.Error(r.Context(), "write response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, res errorRes) {
	if res.code >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Int("code", res.code),
		)
	}
	writeJSON(w, r, res.code, res.body)
}
