package acceptance

import "net/http"

func (s *Suite) TestHealth() {
	resp := s.doJSON(http.MethodGet, "/health", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestMetrics() {
	resp := s.doJSON(http.MethodGet, "/metrics", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}
