package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/Yat-Muk/pulse/internal/httpapi"
	"github.com/Yat-Muk/pulse/internal/pkg/appctx"
	"github.com/Yat-Muk/pulse/internal/pkg/version"
	"github.com/Yat-Muk/pulse/internal/tui/model"
	"github.com/Yat-Muk/pulse/internal/tui/view"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. 命令行參數解析
	var (
		opts     options
		showVer  = flag.Bool("version", false, "顯示版本信息")
		onceMode = flag.Bool("once", false, "刷新一次並打印表格後退出")
		serve    = flag.Bool("serve", false, "啟動 HTTP 只讀接口而不是終端界面")
	)
	flag.StringVar(&opts.WorkDir, "dir", "", "指定工作目錄 (默認: /etc/pulse 或 ~/.pulse)")
	flag.StringVar(&opts.ConfigPath, "config", "", "配置文件路徑 (默認: <dir>/config.yaml)")
	flag.StringVar(&opts.Endpoint, "endpoint", "", "監控端點地址，如 http://localhost:5500")
	flag.StringVar(&opts.Subcluster, "subcluster", "", "子集群名稱")
	flag.StringVar(&opts.Listen, "listen", "", "HTTP 監聽地址 (配合 -serve)")
	flag.BoolVar(&opts.Debug, "debug", false, "開啟調試模式")
	flag.Parse()

	if *showVer {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// 終端界面獨佔屏幕，日誌只寫文件
	opts.Console = *onceMode || *serve

	// 2. 環境初始化
	paths, err := appctx.NewPaths(opts.WorkDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "致命錯誤: 無法初始化路徑: %v\n", err)
		os.Exit(1)
	}

	if !opts.Console {
		redirectStdErr(filepath.Join(paths.LogDir, "stderr.log"))
	}

	// 3. 依賴注入
	deps, err := initializeDependencies(opts, paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失敗: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	deps.Log.Info("Pulse 正在啟動",
		zap.String("version", version.Version),
		zap.String("commit", version.GitCommit),
		zap.Bool("once", *onceMode),
		zap.Bool("serve", *serve),
	)

	// 4. 模式分發
	switch {
	case *onceMode:
		runOnce(deps)
	case *serve:
		if err := runServer(deps); err != nil {
			deps.Log.Error("HTTP 服務異常退出", zap.Error(err))
			deps.Close()
			os.Exit(1)
		}
	default:
		runTUI(deps)
	}
}

// runOnce 刷新一次並打印，刷新失敗時打印當前 (默認) 數據
func runOnce(deps *AppDependencies) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps.Service.Refresh(ctx)

	snap := deps.Store.Current()
	fmt.Print(view.RenderPlainReport(
		deps.Config.Endpoint.Subcluster,
		snap.LastUpdated,
		deps.Service.Rows(),
	))
}

// runServer 啟動 gin 只讀接口，收到信號後優雅退出
func runServer(deps *AppDependencies) error {
	router := httpapi.NewRouter(deps.Service, deps.Config.Endpoint.Subcluster, deps.Log)

	server := &http.Server{
		Addr:              deps.Config.Server.Listen,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if deps.Config.Refresh.OnStart {
		go deps.Service.Refresh(context.Background())
	}

	errCh := make(chan error, 1)
	go func() {
		deps.Log.Info("HTTP 服務啟動", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	deps.Log.Info("正在關閉 HTTP 服務...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("強制關閉: %w", err)
	}
	deps.Log.Info("HTTP 服務已退出")
	return nil
}

func runTUI(deps *AppDependencies) {
	router := model.NewRouter(deps.HandlerConfig)
	mainModel := model.NewModel(router)

	p := tea.NewProgram(
		mainModel,
		tea.WithAltScreen(),
	)

	// 崩潰保護
	defer func() {
		if r := recover(); r != nil {
			_ = p.ReleaseTerminal()
			fmt.Printf("\n\n❌ 程序崩潰: %v\n", r)
			deps.Log.Error("Panic", zap.Any("error", r), zap.String("stack", string(debug.Stack())))
			deps.Close()
			os.Exit(1)
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("程序運行錯誤: %v\n", err)
		deps.Close()
		os.Exit(1)
	}
}

func redirectStdErr(filename string) {
	_ = os.MkdirAll(filepath.Dir(filename), 0755)
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		os.Stderr = f
	}
}
