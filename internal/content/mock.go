package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/justyntemme/cloudreader/pkg/models"
)

const mockRepeat = 20

var mockPassages = map[int][]string{ //nolint:gochecknoglobals
	1: {
		"“斗之气，三段！”",
		"望着测验魔石碑上面闪亮得甚至有些刺眼的五个大字，少年面无表情，唇角有着一抹自嘲，紧握的手掌，因为大力，而导致略微尖锐的指甲深深的刺进了掌心之中，带来一阵阵钻心的疼痛...",
		"(这里是模拟的数据库内容。在真实环境中，这里会显示从 chapters 表中读取的 content 字段。)",
		"萧炎苦涩地笑了笑，落寞地转身，孤单的身影，与周围喧哗的世界显得格格不入。",
		"“萧炎，斗之气，三段！级别：低级！” 测验魔石碑之旁，一位中年男子，看了一眼碑上所显示出来的信息，语气漠然的将之公布了出来...",
		"人群中顿时一片哗然。",
	},
	2: {
		"痛！",
		"好痛！",
		"头好痛！",
		"光怪陆离的梦境如同潮水般退去，周明瑞猛地惊醒，大口大口地喘息着。",
		"他环顾四周，发现自己正处于一个陌生的房间里。煤气灯昏黄的光芒照亮了陈旧的书桌和书架。",
		"(这里是模拟的数据库内容。在真实环境中，这里会显示从 chapters 表中读取的 content 字段。)",
	},
}

func stamp(s string) time.Time {
	t, err := time.ParseInLocation(time.DateTime, s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

// NewMock returns the built-in demo catalog: five categories, four novels
// and fifty chapters for each of the first two.
func NewMock() *Catalog {
	categories := []models.Category{
		{ID: 1, Name: "玄幻奇幻", NovelCount: 120, Description: "东方玄幻与西方奇幻"},
		{ID: 2, Name: "武侠仙侠", NovelCount: 85, Description: "传统武侠与修真"},
		{ID: 3, Name: "都市言情", NovelCount: 200, Description: "现代都市生活"},
		{ID: 4, Name: "历史军事", NovelCount: 45, Description: "架空历史与战争"},
		{ID: 5, Name: "科幻灵异", NovelCount: 60, Description: "未来科技与神秘"},
	}

	novels := []models.Novel{
		{
			ID: 1, Title: "斗破苍穹", CleanTitle: "斗破苍穹", Author: "天蚕土豆", Category: "玄幻奇幻",
			WordCount: 5320000, ChapterCount: 1620, FilePath: "/books/dp.txt", FileSize: 1024000,
			Encoding:  "utf-8",
			Summary:   "这里是属于斗气的世界，没有花俏艳丽的魔法，有的，仅仅是繁衍到巅峰的斗气！",
			Tags:      "热血,升级,爽文",
			CreatedAt: stamp("2023-01-01 12:00:00"), UpdatedAt: stamp("2025-12-14 10:00:00"),
		},
		{
			ID: 2, Title: "诡秘之主", CleanTitle: "诡秘之主", Author: "爱潜水的乌贼", Category: "玄幻奇幻",
			WordCount: 4800000, ChapterCount: 1400, FilePath: "/books/gmzz.txt", FileSize: 980000,
			Encoding:  "utf-8",
			Summary:   "蒸汽与机械的浪潮中，谁能触及非凡？历史和黑暗的迷雾里，又是谁在耳语？",
			Tags:      "克苏鲁,蒸汽朋克,群像",
			CreatedAt: stamp("2023-02-15 09:30:00"), UpdatedAt: stamp("2025-12-10 16:20:00"),
		},
		{
			ID: 3, Title: "凡人修仙传", CleanTitle: "凡人修仙传", Author: "忘语", Category: "武侠仙侠",
			WordCount: 7200000, ChapterCount: 2400, FilePath: "/books/frxxz.txt", FileSize: 1500000,
			Encoding:  "utf-8",
			Summary:   "一个普通山村小子，偶然下进入到当地江湖小门派，成了一名记名弟子。他以这样身份，如何在门派中立足,如何以平庸的资质进入到修仙者的行列，从而笑傲三界之中！",
			Tags:      "凡人流,修真,慢热",
			CreatedAt: stamp("2023-03-10 14:00:00"), UpdatedAt: stamp("2025-12-01 08:00:00"),
		},
		{
			ID: 4, Title: "三体", CleanTitle: "三体", Author: "刘慈欣", Category: "科幻灵异",
			WordCount: 900000, ChapterCount: 36, FilePath: "/books/st.txt", FileSize: 200000,
			Encoding:  "utf-8",
			Summary:   "文化大革命如火如荼进行的同时。军方探寻外星文明的绝秘计划“红岸工程”取得了突破性进展。但在按下发射键的那一刻，历经劫难的叶文洁没有意识到，她彻底改变了人类的命运。",
			Tags:      "硬科幻,外星文明,人性",
			CreatedAt: stamp("2023-04-01 11:11:11"), UpdatedAt: stamp("2025-11-20 09:00:00"),
		},
	}

	now := time.Now()
	chapters := map[int][]models.Chapter{
		1: mockChapters(1, 1000, 3000, now, func(n int) string { return fmt.Sprintf("第%d章 斗之气，三段！", n) }),
		2: mockChapters(2, 2000, 2500, now, func(n int) string { return fmt.Sprintf("第%d章 绯红", n) }),
	}

	return NewCatalog(novels, categories, chapters)
}

func mockChapters(novelID, firstID, words int, created time.Time, title func(int) string) []models.Chapter {
	passage := strings.Join(mockPassages[novelID], "\n\n")
	parts := make([]string, mockRepeat)
	for i := range parts {
		parts[i] = passage
	}
	text := strings.Join(parts, "\n\n")

	out := make([]models.Chapter, 50) //nolint:mnd
	for i := range out {
		out[i] = models.Chapter{
			ID:            firstID + i,
			NovelID:       novelID,
			ChapterNumber: i + 1,
			Title:         title(i + 1),
			Content:       text,
			WordCount:     words,
			CreatedAt:     created,
		}
	}
	return out
}
