package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"peako/config"
	"peako/storage"

	"github.com/spf13/cobra"
)

var (
	bucketPrefix string
	bucketStats  bool
)

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "MinIO存储桶管理",
	Long:  `查看MinIO存储桶中的媒体文件，支持按前缀过滤和查看统计信息，用于排查数据库中没有记录的孤儿对象。`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("开始连接MinIO服务器...")

		cfg := config.Load()
		fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		store, err := storage.NewMinioStore(cfg)
		if err != nil {
			log.Fatalf("无法连接到MinIO: %v", err)
		}
		fmt.Println("MinIO连接成功！")

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		objects, stats, err := storage.ListBucketObjects(ctx, store, bucketPrefix)
		if err != nil {
			log.Fatalf("列出文件失败: %v", err)
		}

		if bucketStats {
			fmt.Printf("\n存储桶统计: %d 个对象, 共 %.2f MB\n",
				stats.TotalObjects, float64(stats.TotalSize)/(1024*1024))
			return
		}

		fmt.Printf("\n列出存储桶中的文件 (前缀: %s)...\n", bucketPrefix)
		for _, obj := range objects {
			fmt.Printf("  %-60s %10d  %s\n", obj.Key, obj.Size,
				obj.LastModified.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("共 %d 个对象\n", len(objects))
	},
}

func init() {
	rootCmd.AddCommand(bucketCmd)

	bucketCmd.Flags().StringVarP(&bucketPrefix, "prefix", "p", "", "按前缀过滤文件")
	bucketCmd.Flags().BoolVarP(&bucketStats, "stats", "s", false, "显示存储桶统计信息")

	bucketCmd.Example = `  # 列出所有文件
  peako bucket

  # 按前缀过滤文件
  peako bucket -p "gallery/"

  # 显示存储桶统计信息
  peako bucket -s`
}
