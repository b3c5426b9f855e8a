package service

import (
	"Lighthouse/internal/pkg/consts"
	"Lighthouse/internal/pkg/redis"
	"context"
	log "log/slog"
)

// 仪表盘聚合覆盖的平台口径
var summaryPlatforms = []string{
	consts.PlatformConsolidated,
	consts.PlatformYouTube,
	consts.PlatformManual,
}

// 榜单覆盖的平台口径
var topPlatforms = []string{
	consts.PlatformAll,
	consts.PlatformYouTube,
	consts.PlatformManual,
}

// organizationCacheKeys 枚举组织名下全部聚合缓存键，新数据入库后整体失效
func organizationCacheKeys(organizationID string) []string {
	keys := make([]string, 0, len(summaryPlatforms)*len(periodDays)+len(topPlatforms))
	for _, platform := range summaryPlatforms {
		for period := range periodDays {
			keys = append(keys, consts.DashboardSummaryKey+organizationID+":"+platform+":"+period)
		}
	}
	for _, platform := range topPlatforms {
		keys = append(keys, consts.TopCommentsKey+organizationID+":"+platform)
	}
	return keys
}

// invalidateOrganizationCache 写入成功后调用，删除失败只记日志不阻断主流程
func invalidateOrganizationCache(ctx context.Context, organizationID string) {
	for _, key := range organizationCacheKeys(organizationID) {
		if err := redis.DeleteKey(ctx, key); err != nil {
			log.WarnContext(ctx, "缓存失效失败", "key", key, "err", err)
		}
	}
}
