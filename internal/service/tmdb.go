package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/user/cinecat/internal/apperr"
	"github.com/user/cinecat/internal/config"
)

// TMDBClient TMDB 接口客户端
type TMDBClient struct {
	baseURL    string
	token      string
	language   string
	httpClient *http.Client
}

// NewTMDBClient 创建 TMDB 客户端
func NewTMDBClient(cfg *config.Config) *TMDBClient {
	return &TMDBClient{
		baseURL:    cfg.TMDBBaseURL,
		token:      cfg.TMDBToken,
		language:   cfg.TMDBLanguage,
		httpClient: http.DefaultClient,
	}
}

type tmdbMovieSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
}

type tmdbDiscoverResponse struct {
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
	Results    []tmdbMovieSummary `json:"results"`
}

type tmdbCrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

type tmdbCreditsResponse struct {
	ID   int              `json:"id"`
	Crew []tmdbCrewMember `json:"crew"`
}

type tmdbPersonResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// DiscoverMovies 拉取 discover 列表的指定页
func (c *TMDBClient) DiscoverMovies(page int) (*tmdbDiscoverResponse, error) {
	query := url.Values{}
	query.Set("language", c.language)
	query.Set("page", strconv.Itoa(page))

	var result tmdbDiscoverResponse
	if err := c.get("/discover/movie", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MovieCredits 拉取电影的演职员表
func (c *TMDBClient) MovieCredits(movieID int) (*tmdbCreditsResponse, error) {
	var result tmdbCreditsResponse
	if err := c.get(fmt.Sprintf("/movie/%d/credits", movieID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PersonDetail 拉取人物详情（拿生日）
func (c *TMDBClient) PersonDetail(personID int) (*tmdbPersonResponse, error) {
	var result tmdbPersonResponse
	if err := c.get(fmt.Sprintf("/person/%d", personID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *TMDBClient) get(path string, query url.Values, target interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstream, err, "请求 TMDB 失败")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.Upstream("TMDB 返回非成功状态码: %d (%s)", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apperr.Wrap(apperr.KindUpstream, err, "解析 TMDB 响应失败")
	}
	return nil
}
