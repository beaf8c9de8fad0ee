package page

import "github.com/decker502/flixrail/pkg/content"

// MaxNotifications 通知菜单最多显示的条目数
const MaxNotifications = 5

// NavItems 页头导航
var NavItems = []string{"Home", "TV Shows", "Movies", "New & Popular", "My List"}

// ProfileMenuItems 头像菜单条目
var ProfileMenuItems = []string{"Manage Profiles", "Account", "Help Center", "Sign out of Flixrail"}

// NoNotifications 没有新内容时通知菜单的唯一条目
const NoNotifications = "No new notifications"

// Notifications 由新上线的卡片生成通知菜单条目
//
// 按分区顺序收集，最多 MaxNotifications 条；unread 为真实通知数（角标），
// 没有通知时 items 只含 NoNotifications。
func Notifications(home *content.Home) (items []string, unread int) {
	if home != nil {
		for _, sec := range home.Sections {
			for _, c := range sec.Contents {
				if c.IsNew && len(items) < MaxNotifications {
					items = append(items, "New arrival: "+c.Title)
				}
			}
		}
	}
	unread = len(items)
	if unread == 0 {
		items = []string{NoNotifications}
	}
	return items, unread
}
