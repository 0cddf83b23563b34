package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler 负责加密备份相关接口
type BackupHandler struct {
	DB         *gorm.DB
	EncryptKey string
	BackupDir  string
}

func NewBackupHandler(db *gorm.DB, encryptKey, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:         db,
		EncryptKey: encryptKey,
		BackupDir:  backupDir,
	}
}

// backupData 是写入备份文件的内容结构
type backupData struct {
	Created time.Time             `json:"created"`
	Records []models.CourseRecord `json:"records"`
}

// CreateBackup 把全部上课记录加密后落盘
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	var records []models.CourseRecord
	if err := h.DB.
		Order("class_date ASC, start_time ASC, id ASC").
		Find(&records).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "查询数据失败")
		return
	}

	data := backupData{
		Created: time.Now(),
		Records: records,
	}
	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "序列化失败")
		return
	}

	enc, err := util.EncryptAES(h.EncryptKey, raw)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "加密失败")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, "创建备份目录失败")
		return
	}

	fileName := fmt.Sprintf("backup-%s.bin", uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, "写入备份文件失败")
		return
	}

	backup := models.Backup{
		FileName:     fileName,
		FilePath:     filePath,
		Size:         int64(len(enc)),
		RecordsCount: len(records),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, "保存备份记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           backup.ID,
		"fileName":     backup.FileName,
		"size":         backup.Size,
		"recordsCount": backup.RecordsCount,
		"createdAt":    backup.CreatedAt,
	})
}

// ListBackups 列出已有的备份
func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "查询备份失败")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":           b.ID,
			"fileName":     b.FileName,
			"size":         b.Size,
			"recordsCount": b.RecordsCount,
			"createdAt":    b.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

func (h *BackupHandler) findBackup(c *gin.Context) (*models.Backup, bool) {
	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "备份不存在")
		} else {
			util.Error(c, http.StatusInternalServerError, "查询备份失败")
		}
		return nil, false
	}
	return &backup, true
}

// DownloadBackup 下载加密备份文件
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup 删除备份记录及对应文件
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	// 先删文件，再删记录
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "删除备份记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RestoreBackup 从指定备份恢复全部上课记录（覆盖式恢复）
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	encData, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "读取备份文件失败")
		return
	}

	raw, err := util.DecryptAES(h.EncryptKey, encData)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "解密备份文件失败")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, "解析备份数据失败")
		return
	}

	// 用事务：先清空现有记录，再导入备份里的记录
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CourseRecord{}).Error; err != nil {
			return err
		}
		for i := range data.Records {
			r := data.Records[i]
			r.ID = 0 // 让数据库重新分配主键
			if err := tx.Create(&r).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "恢复失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"recordsCount": len(data.Records),
	})
}
