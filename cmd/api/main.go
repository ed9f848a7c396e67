package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/LJTian/TrendScout/internal/api"
	"github.com/LJTian/TrendScout/internal/config"
	"github.com/LJTian/TrendScout/internal/storage"
)

// 看板服务：列出 / 保存内容点子，并把每条点子同步成 markdown
var rootCmd = &cobra.Command{
	Use:           "ideas-board",
	Short:         "Serve the content ideas board API",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func init() {
	rootCmd.Flags().String("config", "", "config file (default: ./trend-scout.yaml if present)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("ideas-board failed: %v", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config) error {
	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		return err
	}

	r := gin.Default()
	// 预检请求不需要认证，CORS 放在最前面
	r.Use(api.CORS())
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(store, cfg)
	apiServer.RegisterRoutes(r)

	// 若配置了前端目录，则托管看板静态文件
	if cfg.WebRoot != "" {
		indexFile := filepath.Join(cfg.WebRoot, "index.html")
		r.Static("/assets", filepath.Join(cfg.WebRoot, "assets"))
		r.StaticFile("/app.js", filepath.Join(cfg.WebRoot, "app.js"))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.Status(http.StatusNotFound)
				return
			}
			c.File(indexFile)
		})
	}

	addr := ":" + cfg.AppPort
	log.Printf("starting ideas board at %s ...", addr)
	return r.Run(addr)
}
