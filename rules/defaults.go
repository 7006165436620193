package rules

import "sync"

// 类别键（物品英文类别名）
const (
	CategoryDocuments     = "Documents"
	CategoryClothing      = "Clothing"
	CategoryEssentials    = "Essentials"
	CategoryElectronics   = "Electronics"
	CategoryPersonalCare  = "Personal Care"
	CategoryCosmetics     = "Cosmetics"
	CategoryMedical       = "Medical Kit"
	CategoryCamping       = "Camping"
	CategorySkiing        = "Skiing"
	CategoryBeach         = "Beach"
	CategoryBusiness      = "Business"
	CategoryComfort       = "Comfort"
	CategoryFood          = "Food"
	CategoryMiscellaneous = "Miscellaneous"
)

// 活动标签
const (
	ActivityBeach       = "activity_beach"
	ActivityCamping     = "activity_camping"
	ActivitySkiing      = "activity_skiing"
	ActivityBusiness    = "activity_business"
	ActivityHiking      = "activity_hiking"
	ActivitySwimming    = "activity_swimming"
	ActivityPhotography = "activity_photography"
)

// 证件 ID
const (
	DocPassport       = "passport"
	DocIDCardCN       = "id_card_cn"
	DocIDCardUS       = "id_card_us"
	DocDriversLicense = "drivers_license"
	DocStudentID      = "student_id"
	DocCreditCard     = "credit_card"
)

var (
	defaultOnce  sync.Once
	defaultRules *Rules
)

// Default 返回内置配置表（与内置目录配套）。实例全局共享，只读。
func Default() *Rules {
	defaultOnce.Do(func() {
		r, err := New(DefaultTables())
		if err != nil {
			panic("rules: invalid built-in tables: " + err.Error())
		}
		defaultRules = r
	})
	return defaultRules
}

// DefaultTables 返回一份新的内置配置表（未编译），可在其基础上修改后调用 New。
func DefaultTables() Rules {
	return Rules{
		Defaults:        Defaults{Priority: 30, Threshold: 25, Cap: 6},
		ThresholdFloor:  10,
		RelevanceBuffer: 15,
		CategoryPriority: map[string]float64{
			CategoryDocuments:     100,
			CategoryEssentials:    90,
			CategoryClothing:      80,
			CategoryMedical:       70,
			CategoryElectronics:   70,
			CategoryPersonalCare:  65,
			CategoryBusiness:      60,
			CategoryCamping:       60,
			CategorySkiing:        60,
			CategoryBeach:         60,
			CategoryCosmetics:     50,
			CategoryComfort:       40,
			CategoryFood:          40,
			CategoryMiscellaneous: 30,
		},
		ScoreThreshold: map[string]float64{
			CategoryDocuments:     40,
			CategoryClothing:      35,
			CategorySkiing:        35,
			CategoryBusiness:      35,
			CategoryEssentials:    30,
			CategoryElectronics:   30,
			CategoryPersonalCare:  30,
			CategoryMedical:       30,
			CategoryCamping:       30,
			CategoryBeach:         30,
			CategoryCosmetics:     25,
			CategoryFood:          25,
			CategoryComfort:       20,
			CategoryMiscellaneous: 20,
		},
		ActivityAdjustments: map[string]map[string]float64{
			ActivityCamping: {
				CategoryClothing: -10,
				CategoryMedical:  -10,
				CategoryCamping:  -10,
			},
			ActivityBusiness: {
				CategoryBusiness: -15,
			},
			ActivityBeach: {
				CategoryBeach:        -10,
				CategoryPersonalCare: -5,
			},
			ActivitySkiing: {
				CategorySkiing:   -10,
				CategoryClothing: -5,
			},
			ActivityHiking: {
				CategoryMedical:  -5,
				CategoryClothing: -5,
			},
		},
		MaxItemsPerCategory: map[string]int{
			CategoryDocuments:     8,
			CategoryClothing:      10,
			CategoryEssentials:    8,
			CategoryElectronics:   6,
			CategoryPersonalCare:  8,
			CategoryCosmetics:     5,
			CategoryMedical:       6,
			CategoryCamping:       8,
			CategorySkiing:        6,
			CategoryBeach:         6,
			CategoryBusiness:      6,
			CategoryComfort:       4,
			CategoryFood:          4,
			CategoryMiscellaneous: 4,
		},
		EssentialItems: []string{
			DocPassport, DocIDCardCN, DocIDCardUS, DocCreditCard,
			"phone", "phone_charger", "toothbrush", "toothpaste", "underwear", "socks",
		},
		InternationalEssentialItems: []string{
			DocPassport, "power_adapter", "travel_insurance", "visa_documents",
		},
		CriticalDocuments: []string{
			DocPassport, DocIDCardCN, DocIDCardUS, DocDriversLicense, DocStudentID, DocCreditCard,
		},
		Documents: DocumentRules{
			International: DocumentRule{
				Highest:  []string{DocPassport},
				Excluded: []string{DocIDCardCN, DocIDCardUS},
			},
			Domestic: map[string]DocumentRule{
				"CN": {Highest: []string{DocIDCardCN}, Excluded: []string{DocPassport, DocIDCardUS}},
				"US": {Highest: []string{DocIDCardUS}, Excluded: []string{DocPassport, DocIDCardCN}},
			},
			DomesticDefault: DocumentRule{
				Highest:  []string{DocIDCardCN, DocIDCardUS},
				Excluded: []string{DocPassport},
			},
			Fallback: DocumentRule{
				Highest: []string{DocIDCardCN, DocIDCardUS},
			},
		},
		SubCategories: defaultSubCategories(),
	}
}

func defaultSubCategories() map[string][]Bucket {
	return map[string][]Bucket{
		// 由内到外
		CategoryClothing: {
			{Name: "underwear", Items: []string{"underwear", "socks", "thermal_underwear"}},
			{Name: "tops", Items: []string{"t_shirts", "long_sleeve_shirts", "sweater"}},
			{Name: "bottoms", Items: []string{"pants", "shorts"}},
			{Name: "outerwear", Items: []string{"light_jacket", "raincoat", "down_jacket"}},
			{Name: "footwear", Items: []string{"sneakers", "sandals", "hiking_boots"}},
			{Name: "accessories", Items: []string{"sun_hat", "gloves", "pajamas"}},
		},
		CategoryEssentials: {
			{Name: "phone", Items: []string{"phone", "phone_charger", "power_adapter"}},
			{Name: "carry", Items: []string{"backpack", "house_keys", "water_bottle"}},
			{Name: "weather", Items: []string{"sunglasses", "umbrella"}},
		},
		CategoryElectronics: {
			{Name: "power", Items: []string{"power_bank"}},
			{Name: "work", Items: []string{"laptop", "laptop_charger"}},
			{Name: "media", Items: []string{"camera", "headphones", "e_reader"}},
		},
		CategoryPersonalCare: {
			{Name: "oral", Items: []string{"toothbrush", "toothpaste"}},
			{Name: "shower", Items: []string{"shampoo", "body_wash", "deodorant"}},
			{Name: "grooming", Items: []string{"razor"}},
			{Name: "protection", Items: []string{"sunscreen", "lip_balm"}},
		},
		CategoryCosmetics: {
			{Name: "cleansing", Items: []string{"facial_cleanser", "makeup_remover"}},
			{Name: "skincare", Items: []string{"moisturizer"}},
			{Name: "makeup", Items: []string{"makeup", "perfume"}},
		},
		CategoryMedical: {
			{Name: "prescription", Items: []string{"personal_medication"}},
			{Name: "general", Items: []string{"painkillers", "motion_sickness_pills"}},
			{Name: "wound", Items: []string{"first_aid_kit", "band_aids"}},
			{Name: "outdoor", Items: []string{"insect_repellent"}},
		},
		CategoryCamping: {
			{Name: "shelter", Items: []string{"tent", "sleeping_bag"}},
			{Name: "light", Items: []string{"headlamp", "flashlight"}},
			{Name: "cooking", Items: []string{"camping_stove"}},
			{Name: "tools", Items: []string{"multi_tool"}},
		},
		CategorySkiing: {
			{Name: "layers", Items: []string{"ski_jacket", "ski_pants"}},
			{Name: "protection", Items: []string{"ski_goggles", "ski_gloves", "ski_helmet"}},
			{Name: "warmth", Items: []string{"hand_warmers"}},
		},
		CategoryBeach: {
			{Name: "wear", Items: []string{"swimsuit"}},
			{Name: "towel", Items: []string{"beach_towel"}},
			{Name: "gear", Items: []string{"snorkel_gear", "waterproof_phone_case", "beach_bag"}},
			{Name: "care", Items: []string{"after_sun_lotion"}},
		},
		CategoryBusiness: {
			{Name: "attire", Items: []string{"business_suit", "tie", "dress_shoes"}},
			{Name: "materials", Items: []string{"business_cards", "notebook_pen", "portfolio"}},
		},
		CategoryComfort: {
			{Name: "sleep", Items: []string{"neck_pillow", "eye_mask", "earplugs"}},
			{Name: "lounge", Items: []string{"slippers"}},
		},
		CategoryFood: {
			{Name: "snacks", Items: []string{"snacks", "instant_noodles"}},
			{Name: "local", Items: []string{"local_food_guide"}},
		},
		CategoryMiscellaneous: {
			{Name: "organize", Items: []string{"ziplock_bags", "laundry_bag"}},
			{Name: "security", Items: []string{"travel_lock"}},
			{Name: "reading", Items: []string{"travel_guide"}},
			{Name: "repair", Items: []string{"sewing_kit"}},
		},
	}
}
