package main

import (
	"fmt"
	"strings"

	"expertline/internal/model"
	"expertline/internal/util"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var sampleSnippets = []struct {
	title       string
	code        string
	categories  []string
	description string
}{
	{
		title:      "Recursive fibonacci with memoization",
		categories: []string{"performance", "recursion"},
		code: `function fibonacci(n, memo = {}) {
  if (n <= 1) return n;
  if (memo[n]) return memo[n];
  memo[n] = fibonacci(n - 1, memo) + fibonacci(n - 2, memo);
  return memo[n];
}`,
		description: "Memoized recursion keeps the call tree linear instead of exponential.",
	},
	{
		title:      "Iterative factorial",
		categories: []string{"simplicity"},
		code: `function factorial(n) {
  let result = 1;
  for (let i = 2; i <= n; i++) {
    result *= i;
  }
  return result;
}`,
		description: "Straightforward loop-based factorial, no stack growth.",
	},
	{
		title:      "Binary search over sorted array",
		categories: []string{"performance", "search"},
		code: `function binarySearch(arr, target) {
  let lo = 0, hi = arr.length - 1;
  while (lo <= hi) {
    const mid = (lo + hi) >> 1;
    if (arr[mid] === target) return mid;
    if (arr[mid] < target) lo = mid + 1;
    else hi = mid - 1;
  }
  return -1;
}`,
		description: "Classic O(log n) search, requires the input to be sorted.",
	},
	{
		title:      "Quick sort with random pivot",
		categories: []string{"sorting", "performance"},
		code: `function quickSort(arr) {
  if (arr.length <= 1) return arr;
  const pivot = arr[Math.floor(Math.random() * arr.length)];
  const left = arr.filter(x => x < pivot);
  const mid = arr.filter(x => x === pivot);
  const right = arr.filter(x => x > pivot);
  return [...quickSort(left), ...mid, ...quickSort(right)];
}`,
		description: "Functional-style quicksort. Random pivot avoids worst case on sorted input.",
	},
	{
		title:      "Debounced input handler",
		categories: []string{"performance", "javascript"},
		code: `function debounce(fn, delay) {
  let timer;
  return (...args) => {
    clearTimeout(timer);
    timer = setTimeout(() => fn(...args), delay);
  };
}`,
		description: "Collapses bursts of events into one trailing call.",
	},
}

// Seed 造用户、话题关联和带投票的帖子，方便本地联调专家模式
func Seed(db *gorm.DB, logger *zap.Logger, numUsers, numPosts int) {
	logger.Info("开始填充测试数据", zap.Int("users", numUsers), zap.Int("posts", numPosts))

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	users := make([]model.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := model.User{
			Email:    gofakeit.Email(),
			Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Name:     gofakeit.Name(),
			Bio:      gofakeit.Sentence(10),
			Password: string(hashed),
			Role:     model.RoleUser,
		}
		if err := db.Create(&user).Error; err != nil {
			logger.Error("创建用户失败", zap.Error(err))
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		logger.Fatal("没有可用用户，终止")
	}

	var topics []model.Topic
	if err := db.Find(&topics).Error; err != nil || len(topics) == 0 {
		logger.Fatal("没有可用话题，先跑主程序的迁移", zap.Error(err))
	}

	for i := 0; i < numPosts; i++ {
		snippet := sampleSnippets[i%len(sampleSnippets)]
		author := users[gofakeit.Number(0, len(users)-1)]
		topic := topics[gofakeit.Number(0, len(topics)-1)]

		post := model.Post{
			Title:       snippet.title,
			Code:        snippet.code,
			Description: snippet.description,
			Categories:  util.JoinCSV(snippet.categories),
			TopicID:     &topic.ID,
			AuthorID:    author.ID,
			Username:    author.Username,
			Endorse:     gofakeit.Number(0, 40),
			Oppose:      gofakeit.Number(0, 10),
			IsBaseline:  i%len(sampleSnippets) == 0,
		}
		post.RecalcRatios()

		if err := db.Create(&post).Error; err != nil {
			logger.Error("创建帖子失败", zap.String("title", post.Title), zap.Error(err))
			continue
		}

		db.Model(&model.Topic{}).Where("id = ?", topic.ID).
			Update("num_posts", gorm.Expr("num_posts + 1"))

		if i%10 == 0 {
			logger.Info("进度", zap.Int("created", i+1), zap.Int("total", numPosts))
		}
	}

	logger.Info("测试数据填充完毕")
}
