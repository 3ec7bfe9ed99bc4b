package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/user/cinecat/internal/config"
	"github.com/user/cinecat/internal/repository"
	"github.com/user/cinecat/internal/service"
)

// TMDB 目录导入命令。一次性批处理：跑完退出，失败即终止，
// 重复执行按自然键去重不会产生重复数据。
func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	cfg := config.Load()

	// 没有凭证直接失败退出，不做降级
	if cfg.TMDBToken == "" {
		log.Fatal("请在 .env 或环境变量中设置 TMDB_BEARER_TOKEN")
	}

	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	repos := repository.NewRepositories(db)
	client := service.NewTMDBClient(cfg)
	importer := service.NewImporter(repos, client, cfg)

	log.Println("[Import] 开始导入 TMDB 目录...")
	if err := importer.Run(); err != nil {
		// 整个任务终止，已落库的记录保留
		log.Fatalf("[Import] 导入失败: %v", err)
	}
	log.Println("[Import] 导入完成")
}
