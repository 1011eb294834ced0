package i18n

var english = map[string]string{
	// Sidebar
	"sidebar.title":             "Browse",
	"sidebar.search":            "Search",
	"category.trending_movies":  "Trending Movies",
	"category.popular_movies":   "Popular Movies",
	"category.top_rated_movies": "Top Rated Movies",
	"category.now_playing":      "Now Playing",
	"category.upcoming":         "Upcoming",
	"category.trending_tv":      "Trending TV",
	"category.popular_tv":       "Popular TV",
	"category.top_rated_tv":     "Top Rated TV",
	"category.on_the_air":       "On The Air",
	"category.airing_today":     "Airing Today",
	"category.trending_people":  "Trending People",
	"category.popular_people":   "Popular People",
	"kind.movie":                "Movies",
	"kind.tv":                   "TV",
	"kind.person":               "People",

	// Feed states
	"feed.loading":            "Loading…",
	"feed.loading_more":       "Loading more…",
	"feed.error":              "Failed to load: %s",
	"feed.retry":              "Press r to retry",
	"feed.empty":              "Nothing here",
	"feed.end":                "End of list · %d items",
	"feed.load_more":          "Press m to load more",
	"feed.filtered":           "%d of %d match",
	"feed.no_matches":         "No matches",
	"feed.more":               "more",
	"feed.filter_placeholder": "filter…",

	// Columns
	"column.recommendations": "More like %s",
	"column.known_for":       "%s · Known for",

	// Search bar
	"search.title":       "Search",
	"search.placeholder": "Title, series or person…",
	"search.year":        "Year",
	"search.any_year":    "any",
	"search.adult_on":    "adult: on",
	"search.adult_off":   "adult: off",
	"search.recent":      "Recent",
	"search.results":     "Results for “%s”",
	"search.hint":        "enter search · tab type · C-y year · C-a adult · esc close",

	// Export prompt
	"export.title": "Export images of %s",
	"export.hint":  "Directory; enter to start, esc to cancel",

	// Inspector
	"inspector.overview":        "Overview",
	"inspector.cast":            "Cast",
	"inspector.directors":       "Directed by",
	"inspector.created_by":      "Created by",
	"inspector.genres":          "Genres",
	"inspector.runtime":         "Runtime",
	"inspector.seasons":         "%d seasons · %d episodes",
	"inspector.networks":        "Networks",
	"inspector.reviews":         "Reviews",
	"inspector.videos":          "Videos",
	"inspector.recommendations": "More like this",
	"inspector.known_for":       "Known for",
	"inspector.born":            "Born",
	"inspector.died":            "Died",
	"inspector.biography":       "Biography",
	"inspector.images":          "%d images",
	"inspector.section_failed":  "Some sections failed to load: %s",
	"inspector.loading":         "Loading details…",
	"inspector.empty":           "Select an item",
	"inspector.title":           "Details",
	"inspector.hint":            "J/K scroll · o trailer · t TMDB · x export",

	// Status line and messages
	"status.ready":           "Ready",
	"status.exporting":       "Exporting images %d/%d…",
	"status.exported":        "Saved %d images to %s",
	"status.export_partial":  "Saved %d images to %s (%d failed)",
	"status.export_none":     "No images for %s",
	"status.export_failed":   "Export failed: %s",
	"status.cache_cleared":   "Cache cleared",
	"status.history_cleared": "Search history cleared",
	"status.refreshed":       "Refreshing %s",
	"status.theme":           "Theme: %s",
	"status.opened":          "Opened %s",
	"status.no_trailer":      "No trailer available",
	"status.export_busy":     "An export is already running",
	"status.logout_failed":   "Logout failed: %s",

	// Errors
	"error.offline":        "Network unavailable",
	"error.unauthorized":   "TMDB rejected the API key",
	"error.rate_limited":   "TMDB rate limit reached, try again shortly",
	"error.not_found":      "Not found",
	"error.not_configured": "No TMDB API key configured",

	// Help
	"help.title":          "Keys",
	"help.navigate":       "navigate",
	"help.open":           "open",
	"help.back":           "back",
	"help.search":         "search",
	"help.filter":         "filter",
	"help.retry":          "retry",
	"help.refresh":        "refresh",
	"help.export":         "export images",
	"help.inspect":        "toggle inspector",
	"help.theme":          "cycle theme",
	"help.help":           "help",
	"help.quit":           "quit",
	"help.load_more":      "load more",
	"help.clear_filter":   "clear filter",
	"help.trailer":        "open trailer",
	"help.tmdb":           "open on TMDB",
	"help.cache":          "clear cache",
	"help.logout":         "log out",
	"help.scroll_details": "scroll details",
	"help.section_browse": "Browse",
	"help.section_item":   "Selection",
	"help.section_app":    "App",
	"help.close":          "Press any key to close",

	// Logout
	"logout.title": "Log out?",
	"logout.body":  "The stored API key and cache will be removed.",
	"logout.yes":   "log out",
	"logout.no":    "cancel",
}

var chinese = map[string]string{
	"sidebar.title":             "浏览",
	"sidebar.search":            "搜索",
	"category.trending_movies":  "热门趋势电影",
	"category.popular_movies":   "流行电影",
	"category.top_rated_movies": "高分电影",
	"category.now_playing":      "正在上映",
	"category.upcoming":         "即将上映",
	"category.trending_tv":      "热门趋势剧集",
	"category.popular_tv":       "流行剧集",
	"category.top_rated_tv":     "高分剧集",
	"category.on_the_air":       "正在播出",
	"category.airing_today":     "今日播出",
	"category.trending_people":  "热门人物",
	"category.popular_people":   "流行人物",
	"kind.movie":                "电影",
	"kind.tv":                   "剧集",
	"kind.person":               "人物",

	"feed.loading":            "加载中…",
	"feed.loading_more":       "正在加载更多…",
	"feed.error":              "加载失败：%s",
	"feed.retry":              "按 r 重试",
	"feed.empty":              "暂无内容",
	"feed.end":                "已到底部 · 共 %d 项",
	"feed.load_more":          "按 m 加载更多",
	"feed.filtered":           "匹配 %d / %d",
	"feed.no_matches":         "没有匹配项",
	"feed.more":               "更多",
	"feed.filter_placeholder": "筛选…",

	"column.recommendations": "与 %s 相似",
	"column.known_for":       "%s · 代表作",

	"search.title":       "搜索",
	"search.placeholder": "电影、剧集或人物…",
	"search.year":        "年份",
	"search.any_year":    "不限",
	"search.adult_on":    "成人内容：开",
	"search.adult_off":   "成人内容：关",
	"search.recent":      "最近搜索",
	"search.results":     "“%s”的搜索结果",
	"search.hint":        "回车搜索 · tab 类型 · C-y 年份 · C-a 成人 · esc 关闭",

	"export.title": "导出 %s 的图片",
	"export.hint":  "目录；回车开始，esc 取消",

	"inspector.overview":        "简介",
	"inspector.cast":            "演员",
	"inspector.directors":       "导演",
	"inspector.created_by":      "创作者",
	"inspector.genres":          "类型",
	"inspector.runtime":         "片长",
	"inspector.seasons":         "%d 季 · %d 集",
	"inspector.networks":        "播出平台",
	"inspector.reviews":         "评论",
	"inspector.videos":          "视频",
	"inspector.recommendations": "相似推荐",
	"inspector.known_for":       "代表作",
	"inspector.born":            "出生",
	"inspector.died":            "逝世",
	"inspector.biography":       "生平",
	"inspector.images":          "%d 张图片",
	"inspector.section_failed":  "部分内容加载失败：%s",
	"inspector.loading":         "正在加载详情…",
	"inspector.empty":           "请选择一项",
	"inspector.title":           "详情",
	"inspector.hint":            "J/K 滚动 · o 预告片 · t TMDB · x 导出",

	"status.ready":           "就绪",
	"status.exporting":       "正在导出图片 %d/%d…",
	"status.exported":        "已保存 %d 张图片到 %s",
	"status.export_partial":  "已保存 %d 张图片到 %s（%d 张失败）",
	"status.export_none":     "%s 没有图片",
	"status.export_failed":   "导出失败：%s",
	"status.cache_cleared":   "缓存已清除",
	"status.history_cleared": "搜索历史已清除",
	"status.refreshed":       "正在刷新 %s",
	"status.theme":           "主题：%s",
	"status.opened":          "已打开 %s",
	"status.no_trailer":      "没有可用的预告片",
	"status.export_busy":     "已有导出任务在进行",
	"status.logout_failed":   "退出登录失败：%s",

	"error.offline":        "网络不可用",
	"error.unauthorized":   "TMDB 拒绝了 API 密钥",
	"error.rate_limited":   "已达到 TMDB 请求上限，请稍后再试",
	"error.not_found":      "未找到",
	"error.not_configured": "未配置 TMDB API 密钥",

	"help.title":          "按键",
	"help.navigate":       "移动",
	"help.open":           "打开",
	"help.back":           "返回",
	"help.search":         "搜索",
	"help.filter":         "筛选",
	"help.retry":          "重试",
	"help.refresh":        "刷新",
	"help.export":         "导出图片",
	"help.inspect":        "切换详情",
	"help.theme":          "切换主题",
	"help.help":           "帮助",
	"help.quit":           "退出",
	"help.load_more":      "加载更多",
	"help.clear_filter":   "清除筛选",
	"help.trailer":        "打开预告片",
	"help.tmdb":           "在 TMDB 打开",
	"help.cache":          "清除缓存",
	"help.logout":         "退出登录",
	"help.scroll_details": "滚动详情",
	"help.section_browse": "浏览",
	"help.section_item":   "当前项",
	"help.section_app":    "应用",
	"help.close":          "按任意键关闭",

	"logout.title": "退出登录？",
	"logout.body":  "已保存的 API 密钥和缓存将被删除。",
	"logout.yes":   "退出登录",
	"logout.no":    "取消",
}
