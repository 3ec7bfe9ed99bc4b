package service

import (
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinecat/internal/apperr"
	"github.com/user/cinecat/internal/config"
	"github.com/user/cinecat/internal/model"
)

const tmdbTestBase = "https://api.tmdb.test/3"

func importConfig() *config.Config {
	return &config.Config{
		TMDBToken:        "test-token",
		TMDBBaseURL:      tmdbTestBase,
		TMDBLanguage:     "fr-FR",
		ImportSleep:      0,
		AuthorNameMaxLen: 9,
	}
}

// registerCatalog 注册一份两页的 discover 目录：
// 第一页是正常电影，第二页的电影缺上映日期和简介。
func registerCatalog(t *testing.T) {
	t.Helper()

	httpmock.RegisterResponder("GET", tmdbTestBase+"/discover/movie",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			assert.Equal(t, "fr-FR", req.URL.Query().Get("language"))

			switch req.URL.Query().Get("page") {
			case "1":
				return httpmock.NewJsonResponse(200, map[string]interface{}{
					"page":        1,
					"total_pages": 2,
					"results": []map[string]interface{}{
						{"id": 11, "title": "Dune", "release_date": "2021-09-15", "overview": "Sur Arrakis."},
					},
				})
			case "2":
				return httpmock.NewJsonResponse(200, map[string]interface{}{
					"page":        2,
					"total_pages": 2,
					"results": []map[string]interface{}{
						{"id": 22, "title": "Sans Titre", "release_date": "", "overview": ""},
					},
				})
			}
			return httpmock.NewStringResponse(404, "not found"), nil
		})

	httpmock.RegisterResponder("GET", tmdbTestBase+"/movie/11/credits",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"id": 11,
			"crew": []map[string]interface{}{
				{"id": 101, "name": "Denis Villeneuve", "department": "Writing", "job": "Screenplay"},
				{"id": 102, "name": "Greig Fraser", "department": "Camera", "job": "Director of Photography"},
			},
		}))

	// 第二部电影没有编剧
	httpmock.RegisterResponder("GET", tmdbTestBase+"/movie/22/credits",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"id":   22,
			"crew": []map[string]interface{}{},
		}))

	httpmock.RegisterResponder("GET", tmdbTestBase+"/person/101",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"id":       101,
			"name":     "Denis Villeneuve",
			"birthday": "1967-10-03",
		}))
}

func TestImporterRun(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerCatalog(t)

	repos := newTestRepos(t)
	cfg := importConfig()
	importer := NewImporter(repos, NewTMDBClient(cfg), cfg)

	require.NoError(t, importer.Run())

	var filmCount int64
	require.NoError(t, repos.DB.Model(&model.Film{}).Count(&filmCount).Error)
	assert.EqualValues(t, 2, filmCount)

	// 缺失字段落库为 n/a 哨兵值
	films, _, err := repos.Film.List("", 20, 0)
	require.NoError(t, err)
	byTitle := map[string]*model.Film{}
	for _, f := range films {
		byTitle[f.Title] = f
	}
	require.Contains(t, byTitle, "Sans Titre")
	assert.Equal(t, "n/a", byTitle["Sans Titre"].ReleaseDate)
	assert.Equal(t, "n/a", byTitle["Sans Titre"].Description)
	assert.Equal(t, model.OriginImported, byTitle["Sans Titre"].Origin)
	assert.Equal(t, model.StatusReleased, byTitle["Sans Titre"].Status)

	// 只收编剧部门，摄影师不算作者；名字按配置长度截断
	var authors []*model.Author
	require.NoError(t, repos.DB.Find(&authors).Error)
	require.Len(t, authors, 1)
	assert.Equal(t, "Denis Vil", authors[0].Name)
	require.NotNil(t, authors[0].Birthdate)
	assert.Equal(t, 1967, authors[0].Birthdate.Year())

	dune, err := repos.Film.FindByID(byTitle["Dune"].ID)
	require.NoError(t, err)
	require.Len(t, dune.Authors, 1)
}

func TestImporterIdempotent(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerCatalog(t)

	repos := newTestRepos(t)
	cfg := importConfig()
	importer := NewImporter(repos, NewTMDBClient(cfg), cfg)

	require.NoError(t, importer.Run())
	require.NoError(t, importer.Run())

	var filmCount, authorCount, linkCount int64
	require.NoError(t, repos.DB.Model(&model.Film{}).Count(&filmCount).Error)
	require.NoError(t, repos.DB.Model(&model.Author{}).Count(&authorCount).Error)
	require.NoError(t, repos.DB.Table("film_authors").Count(&linkCount).Error)
	assert.EqualValues(t, 2, filmCount)
	assert.EqualValues(t, 1, authorCount)
	assert.EqualValues(t, 1, linkCount)
}

func TestImporterBirthdayParseFailure(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerCatalog(t)

	// 生日格式不可解析时按缺失处理，任务继续
	httpmock.RegisterResponder("GET", tmdbTestBase+"/person/101",
		httpmock.NewJsonResponderOrPanic(200, map[string]interface{}{
			"id":       101,
			"name":     "Denis Villeneuve",
			"birthday": "unknown???",
		}))

	repos := newTestRepos(t)
	cfg := importConfig()
	importer := NewImporter(repos, NewTMDBClient(cfg), cfg)

	require.NoError(t, importer.Run())

	var authors []*model.Author
	require.NoError(t, repos.DB.Find(&authors).Error)
	require.Len(t, authors, 1)
	assert.Nil(t, authors[0].Birthdate)
}

func TestImporterAbortsOnUpstreamError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerCatalog(t)

	// 第一部电影的演职员表拉取失败，整个任务终止
	httpmock.RegisterResponder("GET", tmdbTestBase+"/movie/11/credits",
		httpmock.NewStringResponder(500, "internal error"))

	repos := newTestRepos(t)
	cfg := importConfig()
	importer := NewImporter(repos, NewTMDBClient(cfg), cfg)

	err := importer.Run()
	require.Error(t, err)
	assert.True(t, apperr.IsUpstream(err))

	// 失败前已落库的电影保留，第二页不再触达
	var filmCount int64
	require.NoError(t, repos.DB.Model(&model.Film{}).Count(&filmCount).Error)
	assert.EqualValues(t, 1, filmCount)
	assert.Zero(t, httpmock.GetCallCountInfo()["GET "+tmdbTestBase+"/movie/22/credits"])
}

func TestImporterMissingToken(t *testing.T) {
	repos := newTestRepos(t)
	cfg := importConfig()
	cfg.TMDBToken = ""
	importer := NewImporter(repos, NewTMDBClient(cfg), cfg)

	err := importer.Run()
	require.Error(t, err)
}

func TestImporterNameTruncationLength(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	registerCatalog(t)

	repos := newTestRepos(t)
	cfg := importConfig()
	cfg.AuthorNameMaxLen = 5
	importer := NewImporter(repos, NewTMDBClient(cfg), cfg)

	require.NoError(t, importer.Run())

	var authors []*model.Author
	require.NoError(t, repos.DB.Find(&authors).Error)
	require.Len(t, authors, 1)
	assert.Equal(t, "Denis", authors[0].Name)
}

func TestTMDBClientErrorStatus(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", tmdbTestBase+"/discover/movie",
		httpmock.NewStringResponder(429, "rate limited"))

	client := NewTMDBClient(importConfig())
	_, err := client.DiscoverMovies(1)
	require.Error(t, err)
	assert.True(t, apperr.IsUpstream(err))
}
