package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services"
	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/services/container"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/code"
	"github.com/limhyeonggeun/lotteworld-admin/internal/error/response"
)

// InterfacePOIController 定义地图POI控制器接口
type InterfacePOIController interface {
	GetPOIs()
	GetPOI()
	CreatePOI()
	UpdatePOI()
	UpdatePOIPosition()
	DeletePOI()
	GetCategories()
	CreateCategory()
	UpdateCategory()
	DeleteCategory()
}

// POIController 处理园区地图兴趣点相关的请求
type POIController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPOIController 创建一个新的POI控制器
func NewPOIController(ctx *gin.Context, container *container.ServiceContainer) *POIController {
	return &POIController{
		Ctx:       ctx,
		Container: container,
	}
}

// POIRequest 表示创建/更新POI的请求体
type POIRequest struct {
	Name        string  `json:"name" binding:"required" example:"아트란티스"`
	CategoryID  *uint   `json:"categoryId" example:"1"`
	X           float64 `json:"x" example:"412.5"`
	Y           float64 `json:"y" example:"233.8"`
	Description string  `json:"description" example:"초고속 어드벤처 코스터"`
	Status      string  `json:"status" example:"open"` // 可选值: open, closed, maintenance
	ImageURL    string  `json:"imageUrl"`
}

// POIPositionRequest 表示更新POI坐标的请求体
type POIPositionRequest struct {
	X float64 `json:"x" binding:"required" example:"412.5"`
	Y float64 `json:"y" binding:"required" example:"233.8"`
}

// POICategoryRequest 表示创建/更新POI分类的请求体
type POICategoryRequest struct {
	Name  string `json:"name" binding:"required" example:"어트랙션"`
	Color string `json:"color" example:"#e74c3c"`
	Icon  string `json:"icon" example:"roller-coaster"`
}

// GetPOIs 获取POI列表
// @Summary      获取POI列表
// @Description  获取地图上的所有兴趣点，可按分类和状态过滤
// @Tags         POI
// @Accept       json
// @Produce      json
// @Param        category_id query int false "分类ID过滤" example:"1"
// @Param        status query string false "状态过滤" example:"open"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /poi [get]
// @Security     BearerAuth
func (c *POIController) GetPOIs() {
	categoryID, _ := strconv.ParseUint(c.Ctx.DefaultQuery("category_id", "0"), 10, 32)
	status := c.Ctx.Query("status")

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	pois, err := poiService.GetAllPOIs(uint(categoryID), status)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询POI列表失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, pois)
}

// GetPOI 获取单个POI详情
// @Summary      获取POI详情
// @Description  根据ID获取兴趣点详情
// @Tags         POI
// @Accept       json
// @Produce      json
// @Param        id path int true "POI ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /poi/{id} [get]
// @Security     BearerAuth
func (c *POIController) GetPOI() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	poi, err := poiService.GetPOIByID(uint(id))
	if err != nil {
		if err.Error() == "兴趣点不存在" {
			response.NotFound(c.Ctx, "兴趣点不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询POI失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, poi)
}

// CreatePOI 创建POI
// @Summary      创建POI
// @Description  在地图上创建一个兴趣点
// @Tags         POI
// @Accept       json
// @Produce      json
// @Param        request body POIRequest true "POI信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /poi [post]
// @Security     BearerAuth
func (c *POIController) CreatePOI() {
	var req POIRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	poi := &models.POI{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		X:           req.X,
		Y:           req.Y,
		Description: req.Description,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	if err := poiService.CreatePOI(poi); err != nil {
		switch err.Error() {
		case "兴趣点名称不能为空":
			response.ParamError(c.Ctx, err.Error())
		case "POI分类不存在":
			response.NotFound(c.Ctx, "POI分类不存在")
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建POI失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, poi)
}

// UpdatePOI 更新POI
// @Summary      更新POI
// @Description  更新兴趣点信息
// @Tags         POI
// @Accept       json
// @Produce      json
// @Param        id path int true "POI ID" example:"1"
// @Param        request body POIRequest true "更新的POI信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /poi/{id} [put]
// @Security     BearerAuth
func (c *POIController) UpdatePOI() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req POIRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"x":           req.X,
		"y":           req.Y,
		"description": req.Description,
		"image_url":   req.ImageURL,
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	poi, err := poiService.UpdatePOI(uint(id), updates)
	if err != nil {
		if err.Error() == "兴趣点不存在" {
			response.NotFound(c.Ctx, "兴趣点不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新POI失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, poi)
}

// UpdatePOIPosition 更新POI坐标
// @Summary      更新POI坐标
// @Description  保存地图拖拽后的落点坐标
// @Tags         POI
// @Accept       json
// @Produce      json
// @Param        id path int true "POI ID" example:"1"
// @Param        request body POIPositionRequest true "新坐标"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /poi/{id}/position [patch]
// @Security     BearerAuth
func (c *POIController) UpdatePOIPosition() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req POIPositionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	poi, err := poiService.UpdatePOIPosition(uint(id), req.X, req.Y)
	if err != nil {
		if err.Error() == "兴趣点不存在" {
			response.NotFound(c.Ctx, "兴趣点不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新POI坐标失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, poi)
}

// DeletePOI 删除POI
// @Summary      删除POI
// @Description  删除指定兴趣点
// @Tags         POI
// @Accept       json
// @Produce      json
// @Param        id path int true "POI ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /poi/{id} [delete]
// @Security     BearerAuth
func (c *POIController) DeletePOI() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	if err := poiService.DeletePOI(uint(id)); err != nil {
		if err.Error() == "兴趣点不存在" {
			response.NotFound(c.Ctx, "兴趣点不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除POI失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// GetCategories 获取POI分类列表
// @Summary      获取POI分类列表
// @Description  获取地图图层筛选用的全部分类
// @Tags         POICategory
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /poi/categories [get]
// @Security     BearerAuth
func (c *POIController) GetCategories() {
	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	categories, err := poiService.GetAllCategories()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "查询POI分类失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, categories)
}

// CreateCategory 创建POI分类
// @Summary      创建POI分类
// @Description  创建一个地图分类
// @Tags         POICategory
// @Accept       json
// @Produce      json
// @Param        request body POICategoryRequest true "分类信息"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /poi/categories [post]
// @Security     BearerAuth
func (c *POIController) CreateCategory() {
	var req POICategoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	category := &models.POICategory{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	if err := poiService.CreateCategory(category); err != nil {
		switch err.Error() {
		case "分类名称不能为空":
			response.ParamError(c.Ctx, err.Error())
		case "分类名称已存在":
			response.Fail(c.Ctx, code.ErrDuplicateRecord, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建POI分类失败: "+err.Error(), nil)
		}
		return
	}

	response.Created(c.Ctx, category)
}

// UpdateCategory 更新POI分类
// @Summary      更新POI分类
// @Description  更新分类信息
// @Tags         POICategory
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID" example:"1"
// @Param        request body POICategoryRequest true "更新的分类信息"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /poi/categories/{id} [put]
// @Security     BearerAuth
func (c *POIController) UpdateCategory() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	var req POICategoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":  req.Name,
		"color": req.Color,
		"icon":  req.Icon,
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	category, err := poiService.UpdateCategory(uint(id), updates)
	if err != nil {
		if err.Error() == "POI分类不存在" {
			response.NotFound(c.Ctx, "POI分类不存在")
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新POI分类失败: "+err.Error(), nil)
		return
	}

	response.Success(c.Ctx, category)
}

// DeleteCategory 删除POI分类
// @Summary      删除POI分类
// @Description  删除分类，分类下仍有兴趣点时拒绝
// @Tags         POICategory
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /poi/categories/{id} [delete]
// @Security     BearerAuth
func (c *POIController) DeleteCategory() {
	id, err := strconv.ParseUint(c.Ctx.Param("id"), 10, 32)
	if err != nil {
		response.ParamError(c.Ctx, "无效的ID参数")
		return
	}

	poiService := c.Container.GetService("poi").(services.InterfacePOIService)
	if err := poiService.DeleteCategory(uint(id)); err != nil {
		switch err.Error() {
		case "POI分类不存在":
			response.NotFound(c.Ctx, "POI分类不存在")
		case "分类下仍有兴趣点，不能删除":
			response.ParamError(c.Ctx, err.Error())
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除POI分类失败: "+err.Error(), nil)
		}
		return
	}

	response.Success(c.Ctx, gin.H{"id": id})
}

// HandlePOIFunc 返回一个处理地图POI请求的Gin处理函数
func HandlePOIFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPOIController(ctx, container)

		switch method {
		case "getPOIs":
			controller.GetPOIs()
		case "getPOI":
			controller.GetPOI()
		case "createPOI":
			controller.CreatePOI()
		case "updatePOI":
			controller.UpdatePOI()
		case "updatePOIPosition":
			controller.UpdatePOIPosition()
		case "deletePOI":
			controller.DeletePOI()
		case "getCategories":
			controller.GetCategories()
		case "createCategory":
			controller.CreateCategory()
		case "updateCategory":
			controller.UpdateCategory()
		case "deleteCategory":
			controller.DeleteCategory()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
