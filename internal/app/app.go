package app

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/dedup"
	"github.com/ninja0404/pump-signal/internal/notifier"
	"github.com/ninja0404/pump-signal/internal/pipeline"
	"github.com/ninja0404/pump-signal/internal/publisher"
	"github.com/ninja0404/pump-signal/internal/repo"
	"github.com/ninja0404/pump-signal/internal/repo/memory"
	"github.com/ninja0404/pump-signal/internal/report"
	"github.com/ninja0404/pump-signal/internal/source"
	"github.com/ninja0404/pump-signal/internal/source/dexscreener"
	"github.com/ninja0404/pump-signal/pkg/database/gormdb"
	"github.com/ninja0404/pump-signal/pkg/logger"
	"github.com/ninja0404/pump-signal/pkg/mq/kafka"
)

const sentryFlushTimeout = 2 * time.Second

// Application 交易对轮询与pump/rug信号服务
type Application struct {
	configManager *config.Manager
	store         repo.Store
	usesGorm      bool
	sentryEnabled bool

	source     source.PairSource
	guard      dedup.Guard
	publishers *publisher.Manager
	bot        *notifier.TelegramBot
	cronReport *report.CronReport
	reports    *report.Service
	scheduler  *pipeline.Scheduler
}

// New 创建新的应用实例
func New() *Application {
	return &Application{
		configManager: config.NewManager(),
	}
}

// Initialize 初始化运行所需的全部组件
func (app *Application) Initialize(ctx context.Context, configPath string) error {
	if err := app.InitializeReadOnly(configPath); err != nil {
		return err
	}

	if err := app.initSentry(); err != nil {
		return err
	}

	// 数据源
	cfg := app.configManager.GetAppConfig()
	app.source = dexscreener.NewClient(cfg.Upstream)

	// 重复事件抑制
	guard, err := dedup.New(ctx, cfg.Dedup, cfg.Redis)
	if err != nil {
		return err
	}
	app.guard = guard

	// 通知通道
	if err := app.setupPublishers(); err != nil {
		return err
	}

	// 定时统计
	if err := app.setupCronReport(); err != nil {
		return err
	}

	app.scheduler = pipeline.NewScheduler(
		app.source,
		app.store,
		app.publishers,
		app.configManager.FilterConfig(),
		pipeline.WithGuard(app.guard),
		pipeline.WithErrorBackoff(cfg.Scanner.ErrorBackoffDuration()),
	)

	logger.Info("✅ 服务初始化完成",
		logger.String("source", app.source.String()),
		logger.String("dedup", app.guard.GetType()),
		logger.Int("publishers", len(app.publishers.Publishers())))
	return nil
}

// InitializeReadOnly 只加载配置、日志和存储，供命令行查询使用
func (app *Application) InitializeReadOnly(configPath string) error {
	// 1. 加载配置
	if err := app.configManager.Load(configPath); err != nil {
		return err
	}

	// 2. 初始化日志系统
	if err := app.configManager.InitLogger(); err != nil {
		return err
	}
	logger.Info("🚀 服务初始化开始", logger.String("config_path", app.configManager.Path()))
	if app.configManager.Created() {
		logger.Warn("📝 配置文件不存在，已写入默认配置", logger.String("path", app.configManager.Path()))
	}

	// 3. 初始化存储
	if err := app.initStore(); err != nil {
		return err
	}

	cfg := app.configManager.GetAppConfig()
	app.reports = report.NewService(app.store, app.configManager.FilterConfig(), cfg.Telegram.Enabled())
	return nil
}

func (app *Application) initSentry() error {
	cfg := app.configManager.GetAppConfig().Sentry
	if cfg.DSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		AttachStacktrace: true,
	}); err != nil {
		return errors.Wrap(err, "init sentry")
	}
	app.sentryEnabled = true
	logger.Info("🛰️ Sentry已启用", logger.String("environment", cfg.Environment))
	return nil
}

// initStore memory驱动用于本地调试，其余走gorm
func (app *Application) initStore() error {
	cfg := app.configManager.GetAppConfig()
	if strings.EqualFold(cfg.Database.Driver, config.DriverMemory) {
		app.store = memory.NewStore()
		logger.Warn("⚠️ 使用内存存储，重启后数据丢失")
		return nil
	}

	db, err := gormdb.Setup(gormdb.DEFAULT_DB, &cfg.Database)
	if err != nil {
		return err
	}
	app.usesGorm = true
	if err := repo.AutoMigrate(db); err != nil {
		return errors.Wrap(err, "migrate schema")
	}
	app.store = repo.NewGormStore(db)
	return nil
}

func (app *Application) setupPublishers() error {
	cfg := app.configManager.GetAppConfig()
	app.publishers = publisher.NewManager()

	if cfg.Feishu.WebhookURL != "" {
		app.publishers.AddPublisher(publisher.NewFeishuPublisher(cfg.Feishu.WebhookURL))
	}

	if cfg.Telegram.Enabled() {
		bot, err := notifier.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			return err
		}
		if err := bot.RegisterCommands(notifier.ReportCommands(app.reports)); err != nil {
			logger.Warn("⚠️ 同步Telegram命令菜单失败", logger.FieldErr(err))
		}
		app.bot = bot
		app.publishers.AddPublisher(publisher.NewTelegramPublisher(bot))
	} else {
		logger.Info("ℹ️ Telegram未配置，仅记录日志")
	}

	if cfg.Kafka.Enabled() {
		producer, err := kafka.SetupKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Producer)
		if err != nil {
			return errors.Wrap(err, "setup kafka producer")
		}
		app.publishers.AddPublisher(publisher.NewKafkaPublisher(producer, cfg.Kafka.Topic))
	}
	return nil
}

func (app *Application) setupCronReport() error {
	spec := app.configManager.GetAppConfig().Report.Cron
	if spec == "" {
		return nil
	}
	cronReport, err := report.NewCronReport(spec, app.reports, app.publishers)
	if err != nil {
		return err
	}
	app.cronReport = cronReport
	return nil
}

// Run 启动轮询并阻塞到收到终止信号
func (app *Application) Run(ctx context.Context) error {
	if err := app.scheduler.Start(ctx); err != nil {
		return err
	}
	if app.bot != nil {
		app.bot.Start()
	}
	if app.cronReport != nil {
		app.cronReport.Start()
	}
	if err := app.configManager.Watch(); err != nil {
		logger.Warn("⚠️ 配置监听启动失败", logger.FieldErr(err))
	}

	cfg := app.configManager.FilterConfig()
	logger.Info("🔥 服务已启动，开始监控新交易对...",
		logger.Any("chains", cfg.Chains),
		logger.String("pump_threshold", cfg.PumpThreshold.String()),
		logger.String("rug_threshold", cfg.RugThreshold.String()),
		logger.Duration("scan_interval", cfg.ScanInterval))

	app.waitForShutdown(ctx)
	return nil
}

// waitForShutdown 等待关闭信号或ctx取消
func (app *Application) waitForShutdown(ctx context.Context) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		logger.Info("📤 收到终止信号，开始优雅关闭应用...", logger.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("📤 上下文已取消，开始优雅关闭应用...")
	}

	app.Shutdown()
}

// Shutdown 优雅关闭，先停轮询再释放下游资源
func (app *Application) Shutdown() {
	logger.Info("🛑 开始关闭服务...")

	if app.scheduler != nil {
		if err := app.scheduler.Stop(); err != nil && !errors.Is(err, pipeline.ErrNotRunning) {
			logger.Error("停止轮询失败", logger.FieldErr(err))
		}
		app.scheduler.Wait()
	}

	if app.cronReport != nil {
		app.cronReport.Stop()
	}

	app.closeComponents()

	if app.scheduler != nil {
		stats := app.scheduler.Stats()
		logger.Info("📈 服务运行统计",
			logger.Int64("cycles", stats.Cycles),
			logger.Int64("failed_cycles", stats.FailedCycles),
			logger.Int64("pairs_admitted", stats.PairsAdmitted),
			logger.Int64("pairs_rejected", stats.PairsRejected),
			logger.Int64("observations", stats.Observations),
			logger.Int64("events", stats.Events),
			logger.Int64("suppressed", stats.Suppressed),
			logger.Int64("pair_errors", stats.PairErrors))
	}

	app.Close()
	logger.Info("✨ 服务已成功关闭")
}

// closeComponents 释放Initialize创建的通知通道和去重组件，可重复调用
func (app *Application) closeComponents() {
	if app.publishers != nil {
		if err := app.publishers.Close(); err != nil {
			logger.Error("关闭通知通道失败", logger.FieldErr(err))
		}
		app.publishers = nil
	}

	if app.guard != nil {
		if err := app.guard.Close(); err != nil {
			logger.Error("关闭去重组件失败", logger.FieldErr(err))
		}
		app.guard = nil
	}
}

// Close 释放存储和配置监听，只读模式下直接调用
func (app *Application) Close() {
	if app.store != nil {
		if err := app.store.Close(); err != nil {
			logger.Error("关闭存储失败", logger.FieldErr(err))
		}
	}
	if app.usesGorm {
		if err := gormdb.Stop(); err != nil {
			logger.Error("关闭数据库连接失败", logger.FieldErr(err))
		}
		app.usesGorm = false
	}
	if err := app.configManager.Close(); err != nil {
		logger.Warn("停止配置监听失败", logger.FieldErr(err))
	}
	if app.sentryEnabled {
		sentry.Flush(sentryFlushTimeout)
	}
}

// Start 初始化并运行
func (app *Application) Start(ctx context.Context, configPath string) error {
	if err := app.Initialize(ctx, configPath); err != nil {
		logger.Error("❌ 服务初始化失败", logger.FieldErr(err))
		app.closeComponents()
		app.Close()
		return err
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("❌ 服务运行失败", logger.FieldErr(err))
		app.Shutdown()
		return err
	}
	return nil
}

// Reports 只读查询服务
func (app *Application) Reports() *report.Service {
	return app.reports
}

// Scheduler 轮询器（用于调试和监控）
func (app *Application) Scheduler() *pipeline.Scheduler {
	return app.scheduler
}

// GetConfigManager 获取配置管理器
func (app *Application) GetConfigManager() *config.Manager {
	return app.configManager
}
