package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/novahub/pkg/internal/service"
	"github.com/yeisme/novahub/pkg/internal/types"
	"github.com/yeisme/novahub/pkg/log"
	"github.com/yeisme/novahub/pkg/metrics"
	"github.com/yeisme/novahub/pkg/middleware"
)

// Index 首页：目录列表（匿名可见），登录后条目带 can_delete 标记，
// 管理员额外附带用户列表. 读路径永不报错，后端退化时渲染空目录.
func (h *Handlers) Index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	svc := service.NewCatalogService(c.Request.Context())

	page := types.CatalogPage{
		Items: svc.List(c.Request.Context(), user),
	}

	if user != nil {
		page.User = &types.UserView{ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}
		page.Users = svc.ListUsers(c.Request.Context(), user)
	}

	if msg := popFlash(c); msg != "" {
		c.JSON(http.StatusOK, gin.H{"flash": msg, "page": page})

		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// Upload 发布应用二进制. multipart 字段 file；要求已登录.
// 成功返回 {success:true}，校验失败 400，后端失败 500（带底层原因）.
func (h *Handlers) Upload(c *gin.Context) {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if user == nil || err != nil || fileHeader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Auth/File missing"})

		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}
	defer func() { _ = file.Close() }()

	svc := service.NewCatalogService(c.Request.Context())

	result, err := svc.Upload(c.Request.Context(), user, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		metrics.UploadCounter.WithLabelValues("binary", "error").Inc()

		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrUnauthenticated) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

			return
		}

		log.Logger().Error().Err(err).Str("file", fileHeader.Filename).Msg("upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	metrics.UploadCounter.WithLabelValues("binary", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "url": result.URL})
}

// UpdateIcon 更新条目预览图. multipart 字段 image；要求已登录，
// 且必须是条目所有者或管理员.
func (h *Handlers) UpdateIcon(c *gin.Context) {
	user := middleware.CurrentUser(c)
	filename := c.Param("filename")

	imageHeader, err := c.FormFile("image")
	if user == nil || err != nil || imageHeader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Auth/Image missing"})

		return
	}

	image, err := imageHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}
	defer func() { _ = image.Close() }()

	svc := service.NewCatalogService(c.Request.Context())

	iconURL, err := svc.UpdateIcon(c.Request.Context(), user, filename, imageHeader.Filename, image, imageHeader.Size)
	if err != nil {
		metrics.UploadCounter.WithLabelValues("icon", "error").Inc()

		switch {
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "owner or admin required"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown file"})
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnauthenticated):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Logger().Error().Err(err).Str("file", filename).Msg("icon update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}

		return
	}

	metrics.UploadCounter.WithLabelValues("icon", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "preview_icon": iconURL})
}

// Download 按文件键跳转到存储定位符. 未知键（或任何解析失败）一律 404，
// 绝不跳转到未定义位置.
func (h *Handlers) Download(c *gin.Context) {
	filename := c.Param("filename")

	svc := service.NewCatalogService(c.Request.Context())

	url, err := svc.DownloadURL(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "404"})

		return
	}

	c.Redirect(http.StatusFound, url)
}

// Delete 删除目录条目后跳回首页. 授权失败与不存在的键都照常跳转
// （幂等删除），拒绝原因通过 flash 提示.
func (h *Handlers) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	filename := c.Param("filename")

	svc := service.NewCatalogService(c.Request.Context())

	if err := svc.Delete(c.Request.Context(), user, filename); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			flash(c, "Delete denied: owner or admin required")
		case errors.Is(err, service.ErrUnauthenticated):
			flash(c, "Please log in")
		default:
			log.Logger().Error().Err(err).Str("file", filename).Msg("delete failed")
			flash(c, "Delete error")
		}
	}

	redirectHome(c)
}
