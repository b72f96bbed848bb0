package cmd

import (
	"fmt"
	"log"

	"peako/config"
	"peako/core/auth"
	"peako/db"
	"peako/model"
	"peako/repository"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "创建管理员账号",
	Long:  `在数据库中创建一个管理员账号，用于登录管理端API`,
	Run: func(cmd *cobra.Command, args []string) {
		if adminUsername == "" || adminEmail == "" || adminPassword == "" {
			log.Fatal("username, email and password are all required")
		}

		cfg := config.Load()
		if err := db.ConnectDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.DB.Close()

		if err := db.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}

		userRepo := repository.NewMySQLUserRepository()

		existing, err := userRepo.GetUserByUsername(adminUsername)
		if err != nil {
			log.Fatalf("Failed to check existing user: %v", err)
		}
		if existing != nil {
			log.Fatalf("User %q already exists", adminUsername)
		}

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		id, err := userRepo.CreateUser(&model.User{
			Username:     adminUsername,
			Email:        adminEmail,
			PasswordHash: hash,
		})
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}

		fmt.Printf("管理员账号创建成功: %s (id=%d)\n", adminUsername, id)
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "管理员用户名")
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "管理员邮箱")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "管理员密码")

	createAdminCmd.Example = `  # 创建管理员账号
  peako createadmin -u admin -e admin@example.com -p secret`
}
