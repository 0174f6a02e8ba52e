package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"nio/internal/auth"
	"nio/internal/config"
	"nio/internal/conversation"
	"nio/internal/db"
	"nio/internal/i18n"
	"nio/internal/logger"
	"nio/internal/manager"
	"nio/internal/notify"
	"nio/internal/store"
	"nio/internal/styles"
	"nio/internal/ui"
)

var (
	configPath string
	query      string
	debugMode  bool
	version    = "dev"
)

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "nio",
	Short: "Terminal chat client with conversation history",
	Long: `nio is a terminal chat client. Conversations of logged in users are kept
in a local sqlite database and listed in the sidebar; anonymous chats live
in memory only.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/nio/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "prompt to send once on startup")
}

// Execute runs the root command.
func Execute() error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if cmd.Flags().Changed("query") {
		cfg.Query = query
	}
	if debugMode {
		cfg.Log.Debug = true
	}
	if err := logger.Init(cfg.Log.Path); err != nil {
		return nil, err
	}
	logger.SetDebug(cfg.Log.Debug)
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	conn, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer conn.Close()

	st := store.New(cfg.Chat.Model, cfg.Chat.Web)
	convs := conversation.NewService(conn, cfg.History.Limit)
	authn := auth.New(conn, cfg.API.Token)
	mgr := manager.New(st, convs, manager.NewOpenAICompleter(cfg.API.BaseURL), authn, cfg.API.Key)
	defer mgr.Close()

	styles.InitTheme()
	m := ui.New(ui.Options{
		Store:           st,
		Conversations:   convs,
		Sender:          mgr,
		Auth:            authn,
		Notify:          notify.NewCenter(cfg.Notify.Desktop),
		Translator:      i18n.New(cfg.UI.Language),
		Query:           cfg.Query,
		ScrollThreshold: cfg.UI.ScrollThreshold,
		CompactWidth:    cfg.UI.CompactWidth,
	})
	defer m.Close()

	logger.WithComponent("main").Info("starting", "version", version, "db", cfg.Storage.Path, "model", cfg.Chat.Model)
	if _, err := ui.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
