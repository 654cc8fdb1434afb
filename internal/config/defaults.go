package config

const (
	defaultDataDir           = "~/.local/share/voirank/data"
	defaultOutputDir         = "~/.local/share/voirank/results"
	defaultCacheDir          = "~/.local/share/voirank/results/history/cache"
	defaultCatalogPath       = "~/.local/share/voirank/characters.csv"
	defaultIconDir           = "~/.local/share/voirank/icons"
	defaultStateDir          = "~/.local/state/voirank"
	defaultMinYear           = 2011
	defaultMaxYear           = 2025
	defaultSingleCutoff      = 10
	defaultPairCutoff        = 20
	defaultSingleTopN        = 10
	defaultPairTopN          = 15
	defaultYearlyTopN        = 20
	defaultExcludeTagPattern = "VOCALOID|VOCAROID|音楽|歌うボイスロイド|CeVIOカバー曲|歌ってみた"
	defaultActiveWindow      = 1
	defaultLookbackYears     = 10
	defaultOverallCategory   = "software_talk"
	defaultPairCategory      = "game"
	defaultActiveUsersLimit  = 50
	defaultSnapshotURL       = "https://snapshot.search.nicovideo.jp/api/v2/snapshot/video/contents/search"
	defaultUserAgent         = "voirank/dev"
	defaultPageSize          = 100
	defaultRequestTimeout    = 30
	defaultSnapshotDelayMS   = 500
	defaultNicknameURL       = "https://seiga.nicovideo.jp/api/user/info"
	defaultNicknameDelayMS   = 200
	defaultNicochartURL      = "https://www.nicochart.jp/total"
	defaultNicochartDelayMS  = 1000
	defaultStepsPerPeriod    = 60
	defaultFramesPerPeriod   = 30
	defaultHoldFrames        = 60
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// DefaultExactMatchNames lists short names that collide with unrelated tags
// when matched as substrings.
var DefaultExactMatchNames = []string{"RIA", "朱花", "青葉", "銀芽", "金苗", "ナツ", "シロ", "ナコ", "レコ"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:     defaultDataDir,
			OutputDir:   defaultOutputDir,
			CacheDir:    defaultCacheDir,
			CatalogPath: defaultCatalogPath,
			IconDir:     defaultIconDir,
			StateDir:    defaultStateDir,
		},
		Analysis: Analysis{
			MinYear:                   defaultMinYear,
			MaxYear:                   defaultMaxYear,
			ExactMatchNames:           append([]string(nil), DefaultExactMatchNames...),
			SingleCutoff:              defaultSingleCutoff,
			PairCutoff:                defaultPairCutoff,
			SingleTopN:                defaultSingleTopN,
			PairTopN:                  defaultPairTopN,
			YearlyTopN:                defaultYearlyTopN,
			ExcludeTagPattern:         defaultExcludeTagPattern,
			FilteredCategories:        []string{defaultOverallCategory},
			ActiveWindowYears:         defaultActiveWindow,
			ContinuationLookbackYears: defaultLookbackYears,
			HistoryCategories:         []string{"game", "onboard", "explanation", "kitchen", "theater", "travel", "fishing"},
			OverallCategory:           defaultOverallCategory,
			PairCategory:              defaultPairCategory,
			StatsCharacters: []string{
				"結月ゆかり", "琴葉茜", "紲星あかり", "東北きりたん", "ずんだもん", "琴葉葵",
				"春日部つむぎ", "弦巻マキ", "東北ずん子", "東北イタコ", "宮舞モカ",
			},
			ActiveUsersLimit: defaultActiveUsersLimit,
			Exclusions:       []Exclusion{{Entity: "東北イタコ", Year: 2013}},
		},
		Categories: defaultCategories(),
		Colors: map[string]string{
			"結月ゆかり":  "#a05daf",
			"紲星あかり":  "#f8b500",
			"琴葉茜":    "#ea5b76",
			"琴葉葵":    "#3a8fb7",
			"弦巻マキ":   "#d03030",
			"東北きりたん": "#a52a2a",
			"ずんだもん":  "#32cd32",
			"東北ずん子":  "#7eba81",
			"東北イタコ":  "#98d98e",
			"四国めたん":  "#e03c60",
			"春日部つむぎ": "#d4a017",
			"雨晴はう":   "#5fb3d4",
			"冥鳴ひまり":  "#e66ab0",
			"重音テト":   "#d7003a",
			"可不":     "#007bbb",
			"足立レイ":   "#ff4500",
		},
		Fetch: Fetch{
			SnapshotURL:           defaultSnapshotURL,
			UserAgent:             defaultUserAgent,
			PageSize:              defaultPageSize,
			RequestTimeoutSeconds: defaultRequestTimeout,
			SnapshotDelayMS:       defaultSnapshotDelayMS,
			NicknameURL:           defaultNicknameURL,
			NicknameDelayMS:       defaultNicknameDelayMS,
			NicochartURL:          defaultNicochartURL,
			NicochartDelayMS:      defaultNicochartDelayMS,
		},
		Animation: Animation{
			StepsPerPeriod:  defaultStepsPerPeriod,
			FramesPerPeriod: defaultFramesPerPeriod,
			HoldFrames:      defaultHoldFrames,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultCategories() map[string]Category {
	return map[string]Category{
		"software_talk": {Label: "全体", Title: "ソフトウェアトーク", Keywords: []string{"ソフトウェアトーク"}, Targets: "tags"},
		"game":          {Label: "実況", Title: "ソフトウェアトーク実況プレイ", Keywords: []string{"ソフトウェアトーク実況プレイ", "VOICEROID実況プレイ", "CeVIO実況プレイ"}},
		"onboard":       {Label: "車載", Title: "ソフトウェアトーク車載", Keywords: []string{"VOICEROID車載", "CeVIO車載", "ソフトウェアトーク車載"}},
		"explanation":   {Label: "解説", Title: "ソフトウェアトーク解説", Keywords: []string{"VOICEROID解説", "CeVIO解説", "ソフトウェアトーク解説"}},
		"kitchen":       {Label: "キッチン", Title: "ソフトウェアトークキッチン", Keywords: []string{"VOICEROIDキッチン", "CeVIOキッチン", "ソフトウェアトークキッチン"}},
		"theater":       {Label: "劇場", Title: "ソフトウェアトーク劇場", Keywords: []string{"VOICEROID劇場", "CeVIO劇場", "ソフトウェアトーク劇場"}},
		"travel":        {Label: "旅行", Title: "ソフトウェアトーク旅行", Keywords: []string{"VOICEROID旅行", "CeVIO旅行", "ソフトウェアトーク旅行"}},
		"fishing":       {Label: "釣り", Title: "ソフトウェアトーク釣り", Keywords: []string{"VOICEROID釣り", "CeVIO釣り", "ソフトウェアトーク釣り"}},
	}
}
