package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
)

// 允许上传的图片扩展名
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// InterfaceMaintenanceController 定义运休公告控制器接口
type InterfaceMaintenanceController interface {
	GetMaintenances()
	GetMaintenance()
	CreateMaintenance()
	UpdateMaintenance()
	DeleteMaintenance()
}

// MaintenanceController 处理设施运休公告相关的请求
type MaintenanceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewMaintenanceController 创建一个新的运休公告控制器
func NewMaintenanceController(ctx *gin.Context, container *container.ServiceContainer) *MaintenanceController {
	return &MaintenanceController{
		Ctx:       ctx,
		Container: container,
	}
}

// MaintenanceRequest 表示登记/编辑运休的请求体（JSON提交时使用）
type MaintenanceRequest struct {
	Label     string `json:"label" form:"label" binding:"required" example:"아트란티스"`
	Reason    string `json:"reason" form:"reason" binding:"required" example:"정기 점검"`
	StartDate string `json:"startDate" form:"startDate" binding:"required" example:"2026-09-01"`
	EndDate   string `json:"endDate" form:"endDate" example:"2026-09-03"` // 省略时与startDate相同
	ImageURL  string `json:"imageUrl" form:"imageUrl"`
}

// parseRange 解析日期区间，结束日期省略时按单日处理
func (r *MaintenanceRequest) parseRange() (start, end time.Time, err error) {
	start, err = time.ParseInLocation(services.MaintenanceDateLayout, r.StartDate, time.Local)
	if err != nil {
		return start, end, err
	}

	if r.EndDate == "" {
		return start, start, nil
	}
	end, err = time.ParseInLocation(services.MaintenanceDateLayout, r.EndDate, time.Local)
	return start, end, err
}

// GetMaintenances 获取运休列表
// @Summary      获取运休列表
// @Description  获取今天及之后的运休记录，按日期升序分组
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /maintenance [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetMaintenances() {
	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	groups, err := maintenanceService.GetUpcoming(time.Now())
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询运休列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, groups)
}

// GetMaintenance 获取单条运休详情
// @Summary      获取运休详情
// @Description  根据ID获取特定运休记录
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "运休记录ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance/{id} [get]
// @Security     BearerAuth
func (c *MaintenanceController) GetMaintenance() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	record, err := maintenanceService.GetByID(uint(id))
	if err != nil {
		if err.Error() == "运休记录不存在" {
			response.NotFound(c.Ctx, "运休记录不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询运休记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, record)
}

// CreateMaintenance 登记运休区间
// @Summary      登记运休
// @Description  登记一个运休日期区间，按天展开为独立记录，支持multipart图片上传
// @Tags         Maintenance
// @Accept       multipart/form-data
// @Produce      json
// @Param        label formData string true "设施名称"
// @Param        reason formData string true "运休事由"
// @Param        startDate formData string true "开始日期(YYYY-MM-DD)"
// @Param        endDate formData string false "结束日期(YYYY-MM-DD)，省略时为单日"
// @Param        image formData file false "运休公告图片"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /maintenance [post]
// @Security     BearerAuth
func (c *MaintenanceController) CreateMaintenance() {
	req, imageURL, ok := c.bindRequestWithImage()
	if !ok {
		return
	}

	start, end, err := req.parseRange()
	if err != nil {
		response.Fail(c.Ctx, code.ErrMaintenanceDateRange, nil)
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	records, err := maintenanceService.RegisterRange(req.Label, req.Reason, imageURL, start, end)
	if err != nil {
		switch err.Error() {
		case "设施名称不能为空", "运休事由不能为空":
			response.ParamError(c.Ctx, err.Error())
		case "结束日期不能早于开始日期":
			response.Fail(c.Ctx, code.ErrMaintenanceDateRange, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "登记运休失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, records)
}

// UpdateMaintenance 编辑运休记录
// @Summary      编辑运休
// @Description  编辑运休记录并扩展日期区间，首日原地更新，其余日期新建记录
// @Tags         Maintenance
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "锚点运休记录ID"
// @Param        label formData string true "设施名称"
// @Param        reason formData string true "运休事由"
// @Param        startDate formData string true "开始日期(YYYY-MM-DD)"
// @Param        endDate formData string false "结束日期(YYYY-MM-DD)"
// @Param        image formData file false "替换的公告图片，省略时沿用原图"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /maintenance/{id} [put]
// @Security     BearerAuth
func (c *MaintenanceController) UpdateMaintenance() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	req, imageURL, ok := c.bindRequestWithImage()
	if !ok {
		return
	}

	start, end, err := req.parseRange()
	if err != nil {
		response.Fail(c.Ctx, code.ErrMaintenanceDateRange, nil)
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	records, err := maintenanceService.UpdateWithRange(uint(id), req.Label, req.Reason, imageURL, start, end)
	if err != nil {
		switch err.Error() {
		case "运休记录不存在":
			response.NotFound(c.Ctx, "运休记录不存在")
		case "结束日期不能早于开始日期":
			response.Fail(c.Ctx, code.ErrMaintenanceDateRange, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "编辑运休失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, records)
}

// DeleteMaintenance 删除单条运休记录
// @Summary      删除运休
// @Description  删除单条运休记录，不影响同区间的其他日期
// @Tags         Maintenance
// @Accept       json
// @Produce      json
// @Param        id path int true "运休记录ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /maintenance/{id} [delete]
// @Security     BearerAuth
func (c *MaintenanceController) DeleteMaintenance() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	maintenanceService := c.Container.GetService("maintenance").(services.InterfaceMaintenanceService)
	if err := maintenanceService.Delete(uint(id)); err != nil {
		if err.Error() == "运休记录不存在" {
			response.NotFound(c.Ctx, "运休记录不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除运休记录失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// bindRequestWithImage 绑定请求体并处理可选的图片上传
// 同时支持multipart表单和JSON两种提交方式
func (c *MaintenanceController) bindRequestWithImage() (*MaintenanceRequest, string, bool) {
	var req MaintenanceRequest

	contentType := c.Ctx.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := c.Ctx.ShouldBind(&req); err != nil {
			response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
			return nil, "", false
		}

		imageURL := req.ImageURL
		if file, err := c.Ctx.FormFile("image"); err == nil && file != nil {
			savedURL, err := c.saveImage(file)
			if err != nil {
				response.FailWithMessage(c.Ctx, code.ErrUploadFailed, "图片保存失败: "+err.Error(), nil)
				return nil, "", false
			}
			imageURL = savedURL
		}
		return &req, imageURL, true
	}

	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return nil, "", false
	}
	return &req, req.ImageURL, true
}

// saveImage 以随机文件名保存上传的图片，返回对外访问路径
func (c *MaintenanceController) saveImage(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("不支持的图片类型: " + ext)
	}

	cfg := c.Container.GetService("config").(*config.Config)
	newName := uuid.NewString() + ext
	dst := filepath.Join(cfg.UploadDir, newName)

	if err := c.Ctx.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}

	return "/uploads/" + newName, nil
}

// HandleMaintenanceFunc 返回一个处理运休公告请求的Gin处理函数
func HandleMaintenanceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewMaintenanceController(ctx, container)

		switch method {
		case "getMaintenances":
			controller.GetMaintenances()
		case "getMaintenance":
			controller.GetMaintenance()
		case "createMaintenance":
			controller.CreateMaintenance()
		case "updateMaintenance":
			controller.UpdateMaintenance()
		case "deleteMaintenance":
			controller.DeleteMaintenance()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
