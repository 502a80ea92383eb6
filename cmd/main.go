package main

import (
	"fmt"
	"goldbach/config"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "goldbach",
	Short: "短区间 Goldbach 素数对亏损包络扫描",
	Long: `对每个中心 n 估计区间 [n-w, n+w] 中素数对 (n-k, n+k) 的亏损包络,
与修正后的 Hardy–Littlewood 预测及实测数量比较, 按十进制或奇素数阶乘区间输出极值摘要。`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径 (YAML)")
	rootCmd.PersistentFlags().String("log-level", "", "日志级别 debug|info|warn|error")
	v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(runCmd, primesCmd, configCmd)
}

// setupLogger 按配置创建日志
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	switch strings.ToLower(cfg.Level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "写出默认配置",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "goldbach.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已写出默认配置 %s\n", path)
		return nil
	},
}

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load(".env")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
