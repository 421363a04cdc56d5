/*
Package content holds the editorial catalogs served to workers.

PURPOSE:
  Monthly promotion themes, announcements and the rewards catalog. All of
  it is bilingual (English + Traditional Chinese) and read-only at
  runtime; the per-worker read/unread state lives on the Worker record,
  not here.

The catalogs ship as compiled-in data the same way the seed worker
directory does. Swapping them for a CMS-backed source only requires
replacing the package-level variables behind the lookup helpers.
*/
package content

// Promotion is a monthly theme workers confirm they have read. Reading
// one for the first time earns a point (see engagement package).
type Promotion struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	TitleZH   string `json:"title_zh"`
	Date      string `json:"date"`
	Icon      string `json:"icon"`
	Content   string `json:"content"`
	ContentZH string `json:"content_zh"`
}

// Announcement is a read-only notice; no engagement mechanics attached.
type Announcement struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TitleZH    string `json:"title_zh"`
	Date       string `json:"date"`
	Content    string `json:"content"`
	ContentZH  string `json:"content_zh"`
	Category   string `json:"category"`
	CategoryZH string `json:"category_zh"`
}

// RewardItem is a display-only catalog entry. Redemption is not
// implemented; points accumulate for a future exchange program.
type RewardItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PointsCost int    `json:"points_cost"`
}

// MonthlyPromotions is the current promotion catalog.
var MonthlyPromotions = []Promotion{
	{
		ID:      "prop-2024-05",
		Title:   "Gender Equality & Anti-Harassment",
		TitleZH: "性別平等與性騷擾防治宣導",
		Date:    "2024-05-01",
		Icon:    "ShieldCheck",
		Content: `Taiwan strictly enforces the "Gender Equity Education Act" and "Gender Equality in Employment Act".
    1. ZERO TOLERANCE: Any unwanted physical contact, verbal jokes, or visual offensive material is forbidden.
    2. RIGHTS: You have the right to a safe workplace. Employers must provide a harassment-free environment.
    3. CASE STUDY: A worker was touched inappropriately by a colleague. She reported to the coordinator. The colleague was fined and the employer provided psychological support.
    4. HOTLINE: If you feel uncomfortable, call 113 or talk to your PAN-ASIA coordinator.`,
		ContentZH: `台灣嚴格執行「性別平等教育法」與「性別平等工作法」。
    1. 零容忍政策：嚴禁任何未經允許的肢體接觸、言語笑話或冒犯性內容。
    2. 您的權利：您有權在安全的工作環境中工作，雇主必須提供無騷擾的環境。
    3. 案例分享：某移工遭到同事不當肢體接觸，隨即通報管理員。該同事後續遭到懲處，公司亦提供移工心理支援。
    4. 申訴專線：若感到不適，請撥打113或連繫您的汎亞協調員。`,
	},
}

// Announcements is the current notice list.
var Announcements = []Announcement{
	{
		ID:         "ann-1",
		Title:      "Upcoming National Holiday Notice",
		TitleZH:    "國定假日放假通知",
		Date:       "2024-06-05",
		Content:    "Dragon Boat Festival is approaching. Please follow the dormitory safety guidelines during the holiday.",
		ContentZH:  "端午節即將到來，連假期間請遵守宿舍安全準則。",
		Category:   "Notice",
		CategoryZH: "公告",
	},
}

// RewardsCatalog lists what points will eventually buy.
var RewardsCatalog = []RewardItem{
	{ID: "seven-voucher-100", Name: "7-11 Voucher (NT$100)", PointsCost: 20},
	{ID: "okmart-card-50", Name: "OK Mart Card (NT$50)", PointsCost: 10},
}

// FindPromotion looks a promotion up by ID.
func FindPromotion(id string) (Promotion, bool) {
	for _, p := range MonthlyPromotions {
		if p.ID == id {
			return p, true
		}
	}
	return Promotion{}, false
}

// UnreadCount counts catalog promotions absent from the read set.
func UnreadCount(readIDs []string) int {
	read := make(map[string]bool, len(readIDs))
	for _, id := range readIDs {
		read[id] = true
	}
	var n int
	for _, p := range MonthlyPromotions {
		if !read[p.ID] {
			n++
		}
	}
	return n
}
