package service

import (
	"fmt"
	"log"
	"time"

	"github.com/user/cinecat/internal/config"
	"github.com/user/cinecat/internal/model"
	"github.com/user/cinecat/internal/repository"
	"github.com/user/cinecat/internal/utils"
)

// Importer TMDB 目录导入任务。单进程顺序执行：
// 逐页拉 discover 列表，逐条落库，条目之间固定休眠限速。
// 任何一次 HTTP 失败整个任务立刻终止，已提交的记录保留。
type Importer struct {
	films   *repository.FilmRepository
	authors *repository.AuthorRepository
	client  *TMDBClient
	cfg     *config.Config
}

// NewImporter 创建导入任务
func NewImporter(repos *repository.Repositories, client *TMDBClient, cfg *config.Config) *Importer {
	return &Importer{
		films:   repos.Film,
		authors: repos.Author,
		client:  client,
		cfg:     cfg,
	}
}

// Run 执行一次完整导入
func (im *Importer) Run() error {
	if im.cfg.TMDBToken == "" {
		return fmt.Errorf("缺少 TMDB_BEARER_TOKEN 环境变量")
	}

	// 截断是有损行为：前缀相同的作者会被合并，启动时明示长度
	log.Printf("[Import] 作者名截断长度: %d 字符", im.cfg.AuthorNameMaxLen)

	first, err := im.client.DiscoverMovies(1)
	if err != nil {
		return err
	}
	log.Printf("[Import] 共 %d 页待拉取", first.TotalPages)

	for page := 1; page <= first.TotalPages; page++ {
		resp, err := im.client.DiscoverMovies(page)
		if err != nil {
			return err
		}

		for _, m := range resp.Results {
			if err := im.importMovie(m); err != nil {
				return err
			}
			// 条目间固定休眠，尊重上游限流
			time.Sleep(im.cfg.ImportSleep)
		}
	}

	return nil
}

// importMovie 落库单部电影及其编剧
func (im *Importer) importMovie(m tmdbMovieSummary) error {
	releaseDate := m.ReleaseDate
	if releaseDate == "" {
		releaseDate = "n/a"
	}
	description := m.Overview
	if description == "" {
		description = "n/a"
	}

	log.Printf("[Import] 电影: %s 上映: %s", m.Title, releaseDate)

	film := &model.Film{
		Title:       m.Title,
		Description: description,
		ReleaseDate: releaseDate,
		Status:      model.StatusReleased,
		Origin:      model.OriginImported,
	}
	if err := im.films.UpsertByNaturalKey(film); err != nil {
		return fmt.Errorf("电影落库失败 (%s): %w", m.Title, err)
	}

	credits, err := im.client.MovieCredits(m.ID)
	if err != nil {
		return err
	}

	// 编剧部门的 crew 即作者
	var writers []tmdbCrewMember
	for _, member := range credits.Crew {
		if member.Department == "Writing" {
			writers = append(writers, member)
		}
	}

	if len(writers) == 0 {
		log.Printf("[Import] 电影 %q 未找到编剧，跳过作者关联", m.Title)
		return nil
	}

	for _, w := range writers {
		person, err := im.client.PersonDetail(w.ID)
		if err != nil {
			return err
		}
		// 生日解析失败按缺失处理，不中断任务
		birthdate := utils.ParseLooseDate(person.Birthday)

		author := &model.Author{
			Name:      utils.TruncateName(w.Name, im.cfg.AuthorNameMaxLen),
			Birthdate: birthdate,
			Origin:    model.OriginImported,
		}
		if err := im.authors.UpsertByNaturalKey(author); err != nil {
			return fmt.Errorf("作者落库失败 (%s): %w", w.Name, err)
		}
		if err := im.films.AppendAuthor(film, author); err != nil {
			return fmt.Errorf("关联作者失败 (%s -> %s): %w", author.Name, m.Title, err)
		}
	}

	return nil
}
