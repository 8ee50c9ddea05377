package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig 从多个源加载配置：.env 文件与 config.yaml。
// 配置加载顺序:
// 1. .env 文件 (用于环境变量)
// 2. config.yaml (基础配置)
// 环境变量会覆盖配置文件中的同名设置。
func LoadConfig() {
	// 1. 从 .env 文件加载环境变量，如果文件不存在则忽略。
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到 .env 文件，将跳过加载。")
	}

	// 2. 设置并读取基础配置文件 (config.yaml)。
	viper.SetConfigName("config")                          // 配置文件名 (无扩展名)
	viper.SetConfigType("yaml")                            // 配置文件类型
	viper.AddConfigPath(".")                               // 在当前工作目录中查找
	viper.AutomaticEnv()                                   // 自动读取匹配的环境变量
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // 将配置键中的'.'替换为'_'以匹配环境变量

	setDefaults()

	// 读取基础配置。
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// 配置文件未找到是正常情况，可以继续。
			log.Printf("未找到基础配置文件 (config.yaml)，将仅使用环境变量。")
		} else {
			// 如果找到配置文件但解析出错，则终止程序。
			panic(fmt.Errorf("解析基础配置文件时发生致命错误: %w", err))
		}
	}
}

func setDefaults() {
	viper.SetDefault("database.path", "data/sanitizer.db")
	viper.SetDefault("cache.capacity", 1000)

	// 副本同步，url 为空时以本地模式运行。
	viper.SetDefault("replica.url", "")
	viper.SetDefault("replica.token", "")
	viper.SetDefault("replica.syncCron", "0 */6 * * *")

	viper.SetDefault("bot.sanitizedEmojiId", "1206376642042138724")
	viper.SetDefault("bot.adminChannelId", "")

	viper.SetDefault("guardian.pollIntervalMs", 500)
	viper.SetDefault("guardian.timeoutMs", 8000)

	// 作者查询的总预算必须保持在 1–3 秒内（HTTP 超时 + 1 秒余量）。
	viper.SetDefault("lookup.timeoutMs", 2000)

	viper.SetDefault("ops.listenAddr", "")
}
