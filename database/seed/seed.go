// File: database/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	contentRepo "roomify/database/repository/content"
	roomRepo "roomify/database/repository/room"
	"roomify/models"
)

var defaultContent = map[string]string{
	"site_title":       "會議室預約系統",
	"site_subtitle":    "企業空間 · 即時預約",
	"site_description": "提供多種類型會議室，彈性時段預約，滿足各種商務需求。從小型洽談到大型簡報，我們都為您準備好了。",
	"hero_badge":       "專業會議空間",
	"service_hours":    "週一至週五 08:00 – 22:00 ／ 週六 09:00 – 18:00",
	"contact_phone":    "02-1234-5678",
	"contact_email":    "booking@example.com",
	"notice_1":         "請提前 15 分鐘辦理入場手續",
	"notice_2":         "取消或更改請提前 2 小時通知",
	"notice_3":         "禁止攜帶食物進入精緻會議室",
	"notice_4":         "使用後請恢復設備原始設定",
	"notice_5":         "逾時使用將依時薪計費",
	"footer_text":      "© 2026 會議室預約系統 · 版權所有",
}

var defaultRooms = []models.Room{
	{
		Name: "創意腦力激盪室", RoomType: "腦力激盪", Capacity: 8, HourlyRate: 600,
		Description: "開放式空間設計，配備白板牆面與磁性貼牆，激發創意思維。適合產品企劃、設計衝刺、創意發想等工作坊。",
		Amenities:   []string{"白板牆", "磁性貼紙", "活動式座椅", "投影機", "WiFi", "充電站"},
		Floor:       "3F",
	},
	{
		Name: "精緻洽談室 A", RoomType: "洽談室", Capacity: 4, HourlyRate: 400,
		Description: "私密安靜的小型洽談空間，皮革座椅搭配木質桌面，營造專業且舒適的商談氛圍。",
		Amenities:   []string{"螢幕共享", "視訊攝影機", "噪音隔絕", "WiFi", "白板", "咖啡機"},
		Floor:       "2F",
	},
	{
		Name: "大型簡報廳", RoomType: "簡報廳", Capacity: 50, HourlyRate: 2000,
		Description: "專業簡報空間，配備劇院式座椅、雙螢幕投影、麥克風系統，適合公司發表會、教育訓練、大型會議。",
		Amenities:   []string{"雙投影幕", "麥克風系統", "劇院座椅", "燈光控制", "錄影設備", "舞台"},
		Floor:       "1F",
	},
	{
		Name: "視訊會議中心", RoomType: "視訊會議", Capacity: 12, HourlyRate: 1000,
		Description: "高規格視訊會議室，4K 攝影機搭配環繞音響，無論遠端或現場與會者皆有絕佳體驗。",
		Amenities:   []string{"4K 攝影機", "環繞音響", "自動追蹤", "雙顯示器", "噪音抑制麥克風", "WiFi 6"},
		Floor:       "4F",
	},
	{
		Name: "主管行政套房", RoomType: "行政套房", Capacity: 6, HourlyRate: 1500,
		Description: "頂層行政會議室，俯瞰城市景觀，配備高端辦公家具，適合董事會議、高階主管洽談、VIP 接待。",
		Amenities:   []string{"城市景觀", "高端家具", "私人衛浴", "秘書服務", "餐飲服務", "私人停車"},
		Floor:       "12F",
	},
	{
		Name: "多功能培訓教室", RoomType: "培訓教室", Capacity: 30, HourlyRate: 1200,
		Description: "彈性空間配置，座椅可重新排列，配備電子白板與個人顯示器，適合員工培訓、研討會、工作坊。",
		Amenities:   []string{"電子白板", "個人顯示器", "彈性座位", "錄音設備", "茶水站", "停車場"},
		Floor:       "5F",
	},
}

// Seed fills an empty database with the default room catalogue and site
// content. Existing rooms and content entries are left alone.
func Seed(ctx context.Context, rooms roomRepo.RoomRepository, content contentRepo.ContentRepository) error {
	for key, value := range defaultContent {
		existing, err := content.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("seed: failed to read site content %q: %w", key, err)
		}
		if existing != "" {
			continue
		}
		if err := content.Set(ctx, key, value); err != nil {
			return fmt.Errorf("seed: failed to write site content %q: %w", key, err)
		}
	}

	existing, err := rooms.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: failed to count rooms: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, room := range defaultRooms {
		room.ID = uuid.New().String()
		room.IsActive = true
		room.CreatedAt = time.Now()
		if err := rooms.Create(ctx, &room); err != nil {
			return fmt.Errorf("seed: failed to create room %q: %w", room.Name, err)
		}
	}
	return nil
}
