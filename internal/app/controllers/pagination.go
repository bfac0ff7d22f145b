package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination 从查询参数中解析分页参数，越界时回落到默认值
func parsePagination(ctx *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
