package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prismedia/news-server/internal/dto"
)

// accessToken creates a user and returns a valid bearer token for it
func (s *Suite) accessToken(email string) string {
	user := s.createUser(email)
	token, err := s.JWTManager.CreateAccessToken(user.ID)
	s.Require().NoError(err)
	return token
}

func itemRequest(title, bias string, clusterID *int64) dto.NewsItemRequest {
	category := "politics"
	return dto.NewsItemRequest{
		Title:         title,
		Preview:       "preview of " + title,
		Category:      &category,
		PoliticalBias: bias,
		ClusterID:     clusterID,
	}
}

func (s *Suite) TestNews_RequiresAuth() {
	resp := s.doJSON(http.MethodGet, "/api/news", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestNews_CRUD() {
	token := s.accessToken("news-crud@example.com")

	body, _ := json.Marshal(itemRequest("First article", "CENTER", nil))
	createResp := s.doJSON(http.MethodPost, "/api/news", body, token)
	s.Equal(http.StatusCreated, createResp.StatusCode)

	var created dto.NewsItemResponse
	s.Require().NoError(json.NewDecoder(createResp.Body).Decode(&created))
	createResp.Body.Close()
	s.NotZero(created.ID)
	s.Equal("First article", created.Title)
	s.Equal("CENTER", created.PoliticalBias)

	getResp := s.doJSON(http.MethodGet, fmt.Sprintf("/api/news/%d", created.ID), nil, token)
	s.Equal(http.StatusOK, getResp.StatusCode)
	getResp.Body.Close()

	body, _ = json.Marshal(itemRequest("Updated article", "LEFT", nil))
	updateResp := s.doJSON(http.MethodPut, fmt.Sprintf("/api/news/%d", created.ID), body, token)
	s.Equal(http.StatusOK, updateResp.StatusCode)

	var updated dto.NewsItemResponse
	s.Require().NoError(json.NewDecoder(updateResp.Body).Decode(&updated))
	updateResp.Body.Close()
	s.Equal("Updated article", updated.Title)
	s.Equal("LEFT", updated.PoliticalBias)

	deleteResp := s.doJSON(http.MethodDelete, fmt.Sprintf("/api/news/%d", created.ID), nil, token)
	s.Equal(http.StatusNoContent, deleteResp.StatusCode)
	deleteResp.Body.Close()

	missingResp := s.doJSON(http.MethodGet, fmt.Sprintf("/api/news/%d", created.ID), nil, token)
	s.Equal(http.StatusNotFound, missingResp.StatusCode)
	missingResp.Body.Close()
}

func (s *Suite) TestNews_InvalidBias() {
	token := s.accessToken("news-bias@example.com")

	body, _ := json.Marshal(itemRequest("Bad bias", "FAR_OUT", nil))
	resp := s.doJSON(http.MethodPost, "/api/news", body, token)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestNews_ListPaging() {
	token := s.accessToken("news-paging@example.com")

	for i := 0; i < 3; i++ {
		body, _ := json.Marshal(itemRequest(fmt.Sprintf("Article %d", i), "CENTER", nil))
		resp := s.doJSON(http.MethodPost, "/api/news", body, token)
		s.Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.doJSON(http.MethodGet, "/api/news?page=0&size=2", nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var page dto.Page[dto.NewsItemResponse]
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Len(page.Content, 2)
	s.Equal(0, page.Page)
	s.Equal(2, page.Size)
	s.Equal(int64(3), page.TotalElements)
	s.Equal(2, page.TotalPages)
}

func (s *Suite) TestNews_KeywordFilter() {
	token := s.accessToken("news-filter@example.com")

	for _, title := range []string{"Election results", "Sports roundup"} {
		body, _ := json.Marshal(itemRequest(title, "CENTER", nil))
		resp := s.doJSON(http.MethodPost, "/api/news", body, token)
		s.Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.doJSON(http.MethodGet, "/api/news?keyword=election", nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var page dto.Page[dto.NewsItemResponse]
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Require().Len(page.Content, 1)
	s.Equal("Election results", page.Content[0].Title)
}

func (s *Suite) TestClusters_BiasRecomputedFromItems() {
	token := s.accessToken("clusters@example.com")

	body, _ := json.Marshal(dto.NewsClusterRequest{Topic: "Election"})
	clusterResp := s.doJSON(http.MethodPost, "/api/clusters", body, token)
	s.Equal(http.StatusCreated, clusterResp.StatusCode)

	var cluster dto.NewsClusterResponse
	s.Require().NoError(json.NewDecoder(clusterResp.Body).Decode(&cluster))
	clusterResp.Body.Close()

	for _, bias := range []string{"LEFT", "LEFT", "CENTER", "RIGHT"} {
		body, _ := json.Marshal(itemRequest("Item "+bias, bias, &cluster.ID))
		resp := s.doJSON(http.MethodPost, "/api/news", body, token)
		s.Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	getResp := s.doJSON(http.MethodGet, fmt.Sprintf("/api/clusters/%d", cluster.ID), nil, token)
	defer getResp.Body.Close()
	s.Equal(http.StatusOK, getResp.StatusCode)

	var loaded dto.NewsClusterResponse
	s.Require().NoError(json.NewDecoder(getResp.Body).Decode(&loaded))
	s.Equal(4, loaded.ArticleCount)
	s.InDelta(50.0, loaded.LeftPercent, 0.001)
	s.InDelta(25.0, loaded.CenterPercent, 0.001)
	s.InDelta(25.0, loaded.RightPercent, 0.001)
	s.InDelta(0.0, loaded.CenterLeftPercent, 0.001)
	s.Len(loaded.NewsItems, 4)
}

func (s *Suite) TestClusters_IncludeItemsFlag() {
	token := s.accessToken("clusters-flag@example.com")

	body, _ := json.Marshal(dto.NewsClusterRequest{Topic: "Economy"})
	clusterResp := s.doJSON(http.MethodPost, "/api/clusters", body, token)
	s.Equal(http.StatusCreated, clusterResp.StatusCode)

	var cluster dto.NewsClusterResponse
	s.Require().NoError(json.NewDecoder(clusterResp.Body).Decode(&cluster))
	clusterResp.Body.Close()

	body, _ = json.Marshal(itemRequest("Economy item", "CENTER", &cluster.ID))
	itemResp := s.doJSON(http.MethodPost, "/api/news", body, token)
	s.Equal(http.StatusCreated, itemResp.StatusCode)
	itemResp.Body.Close()

	resp := s.doJSON(http.MethodGet, fmt.Sprintf("/api/clusters/%d?includeItems=false", cluster.ID), nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var loaded dto.NewsClusterResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&loaded))
	s.Empty(loaded.NewsItems)
	s.Equal(1, loaded.ArticleCount)
}

func (s *Suite) TestClusters_ListIncludeItems() {
	token := s.accessToken("clusters-list-items@example.com")

	body, _ := json.Marshal(dto.NewsClusterRequest{Topic: "Healthcare"})
	clusterResp := s.doJSON(http.MethodPost, "/api/clusters", body, token)
	s.Equal(http.StatusCreated, clusterResp.StatusCode)

	var cluster dto.NewsClusterResponse
	s.Require().NoError(json.NewDecoder(clusterResp.Body).Decode(&cluster))
	clusterResp.Body.Close()

	body, _ = json.Marshal(itemRequest("Healthcare item", "CENTER", &cluster.ID))
	itemResp := s.doJSON(http.MethodPost, "/api/news", body, token)
	s.Equal(http.StatusCreated, itemResp.StatusCode)
	itemResp.Body.Close()

	// Items are omitted from listings by default
	resp := s.doJSON(http.MethodGet, "/api/clusters", nil, token)
	s.Equal(http.StatusOK, resp.StatusCode)

	var page dto.Page[dto.NewsClusterResponse]
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	s.Require().Len(page.Content, 1)
	s.Empty(page.Content[0].NewsItems)

	resp = s.doJSON(http.MethodGet, "/api/clusters?includeItems=true", nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Require().Len(page.Content, 1)
	s.Require().Len(page.Content[0].NewsItems, 1)
	s.Equal("Healthcare item", page.Content[0].NewsItems[0].Title)
}

func (s *Suite) TestClusters_TopicFilter() {
	token := s.accessToken("clusters-filter@example.com")

	for _, topic := range []string{"Climate summit", "Tech layoffs"} {
		body, _ := json.Marshal(dto.NewsClusterRequest{Topic: topic})
		resp := s.doJSON(http.MethodPost, "/api/clusters", body, token)
		s.Equal(http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := s.doJSON(http.MethodGet, "/api/clusters?topic=climate", nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var page dto.Page[dto.NewsClusterResponse]
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Require().Len(page.Content, 1)
	s.Equal("Climate summit", page.Content[0].Topic)
}
