package i18n

// menuLabels maps the chart toolkit's English context menu labels, with
// mnemonic markers removed, to Simplified Chinese.
var menuLabels = map[string]string{
	// top level
	"View All":     "查看全部 (View All)",
	"X Axis":       "X 轴设置",
	"Y Axis":       "Y 轴设置",
	"Mouse Mode":   "鼠标模式",
	"Plot Options": "绘图选项",
	"Export...":    "导出...",

	// axis submenus
	"Auto Range":        "自动量程 (Auto)",
	"Link Axis":         "联动其他轴",
	"Log Scale":         "对数坐标 (Log)",
	"Grid":              "显示网格",
	"Invert Axis":       "反转坐标轴",
	"Show Axis":         "显示坐标轴",
	"Lock Aspect Ratio": "锁定纵横比",
	"Auto Range X":      "X轴自动量程",
	"Auto Range Y":      "Y轴自动量程",

	// mouse mode
	"3 Button": "三键模式 (推荐)",
	"1 Button": "单键模式 (平板)",

	// plot options
	"Transforms":   "数据变换",
	"Downsample":   "降采样 (优化性能)",
	"Average":      "平均 (Average)",
	"Mean":         "均值 (Mean)",
	"Clip to View": "仅渲染可见区域 (Clip)",
	"Alpha":        "透明度 (Alpha)",
	"Points":       "显示数据点 (Points)",

	// transforms and downsample modes
	"FFT":        "快速傅里叶变换 (FFT)",
	"Log X":      "对数 X",
	"Log Y":      "对数 Y",
	"Derivative": "导数 (Derivative)",
	"Phase":      "相位",
	"Magnitude":  "幅值",
	"Subsample":  "抽样 (最快)",
	"Peak":       "峰值保留 (最准)",

	// scene menu
	"Export":            "导出面板",
	"Data":              "数据",
	"Image":             "图片",
	"SVG":               "SVG 矢量图",
	"CSV":               "CSV 表格数据",
	"Matplotlib Window": "发送至 Matplotlib",
	"Copy":              "复制到剪贴板",
	"Close":             "关闭",
}
