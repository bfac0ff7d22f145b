package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/limhyeonggeun/lotteworld-admin/internal/domain/models"
	"github.com/limhyeonggeun/lotteworld-admin/internal/infrastructure/config"
	"github.com/limhyeonggeun/lotteworld-admin/pkg/logger"
)

// InterfaceDispatcherService defines the alert dispatcher service interface
type InterfaceDispatcherService interface {
	Connect() error
	Disconnect()
	Start()
	Stop()
	DispatchDue(now time.Time) (int, error)
	Dispatch(alert *models.Alert) error
}

// channelHandler 按发送方式投递单条通知
type channelHandler func(alert *models.Alert) error

// DispatcherService 负责预约通知的到期投递
// 定时扫描scheduled状态且发送时间已到的通知，按发送方式分发，
// 成功置为sent，失败置为failed并记录原因
type DispatcherService struct {
	DB     *gorm.DB
	Config *config.Config

	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex

	handlers map[string]channelHandler
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewDispatcherService 创建一个新的通知调度服务
func NewDispatcherService(db *gorm.DB, cfg *config.Config) InterfaceDispatcherService {
	s := &DispatcherService{
		DB:       db,
		Config:   cfg,
		stopChan: make(chan struct{}),
	}
	s.handlers = map[string]channelHandler{
		models.DeliveryPush:  s.sendPush,
		models.DeliveryEmail: s.sendEmail,
	}
	if cfg.MQTTBrokerURL != "" {
		s.setupMQTTClient()
	}
	return s
}

// setupMQTTClient 配置MQTT客户端
func (s *DispatcherService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s", s.Config.MQTTClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	// 添加用户名和密码
	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	// 设置连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.IsConnected = false
		s.connectedMutex.Unlock()
	})

	// 设置连接建立回调
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Println("[MQTT] 成功连接到", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.IsConnected = true
		s.connectedMutex.Unlock()
	})

	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器，带有指数退避重试
func (s *DispatcherService) Connect() error {
	if s.Client == nil {
		log.Println("[MQTT] 未配置Broker地址，推送通道禁用")
		return nil
	}

	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()
	if isConnected {
		return nil
	}

	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		token := s.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			s.connectedMutex.Lock()
			s.IsConnected = true
			s.connectedMutex.Unlock()
			log.Printf("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
			return nil
		}

		err = token.Error()
		backoffTime := time.Duration(1<<uint(i)) * time.Second
		log.Printf("[MQTT] 连接尝试 %d/%d 失败: %v, 将在 %v 后重试", i+1, maxRetries, err, backoffTime)
		time.Sleep(backoffTime)
	}

	return fmt.Errorf("[MQTT] 连接失败，已尝试 %d 次: %v", maxRetries, err)
}

// Disconnect 断开与MQTT服务器的连接
func (s *DispatcherService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// Start 启动后台调度循环
func (s *DispatcherService) Start() {
	interval := s.Config.DispatchInterval
	if interval <= 0 {
		logger.Info("通知调度器未启用 (DISPATCH_INTERVAL=%d)", interval)
		return
	}

	go func() {
		ticker := time.NewTicker(time.Duration(interval) * time.Second)
		defer ticker.Stop()

		logger.Info("通知调度器已启动，扫描间隔 %d 秒", interval)
		for {
			select {
			case <-ticker.C:
				if n, err := s.DispatchDue(time.Now()); err != nil {
					logger.Error("扫描到期通知失败: %v", err)
				} else if n > 0 {
					logger.Info("本轮投递了 %d 条到期通知", n)
				}
			case <-s.stopChan:
				logger.Info("通知调度器已停止")
				return
			}
		}
	}()
}

// Stop 停止调度循环
func (s *DispatcherService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// DispatchDue 投递所有已到发送时间的预约通知，返回成功投递的数量
// 发送时间为固定格式字符串，字典序比较即时间序比较
func (s *DispatcherService) DispatchDue(now time.Time) (int, error) {
	var due []models.Alert
	cutoff := now.Format(DeliveryTimeLayout)
	if err := s.DB.
		Where("status = ? AND delivery_time <= ?", models.AlertStatusScheduled, cutoff).
		Order("delivery_time ASC").
		Find(&due).Error; err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		alert := &due[i]
		if err := s.Dispatch(alert); err != nil {
			if dbErr := s.DB.Model(alert).Updates(map[string]interface{}{
				"status":      models.AlertStatusFailed,
				"fail_reason": err.Error(),
			}).Error; dbErr != nil {
				return sent, dbErr
			}
			logger.Error("通知投递失败 [%s]: %v", alert.ID, err)
			continue
		}

		if err := s.DB.Model(alert).Updates(map[string]interface{}{
			"status":      models.AlertStatusSent,
			"fail_reason": "",
		}).Error; err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

// Dispatch 按发送方式投递单条通知
func (s *DispatcherService) Dispatch(alert *models.Alert) error {
	handler, ok := s.handlers[alert.DeliveryMethod]
	if !ok {
		return fmt.Errorf("未知的发送方式: %s", alert.DeliveryMethod)
	}
	return handler(alert)
}

// sendPush 通过MQTT发布推送通知
func (s *DispatcherService) sendPush(alert *models.Alert) error {
	if s.Client == nil {
		return errors.New("推送通道未配置")
	}

	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()
	if !isConnected {
		return errors.New("推送通道未连接")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"id":        alert.ID,
		"title":     alert.Title,
		"content":   alert.Content,
		"type":      alert.Type,
		"recipient": alert.Recipient,
		"userIds":   alert.UserIDs,
		"imageUrl":  alert.ImageURL,
		"actionUrl": alert.ActionURL,
		"timestamp": time.Now().Unix(),
	})
	if err != nil {
		return err
	}

	topic := s.Config.MQTTTopic + "/" + alert.Type
	token := s.Client.Publish(topic, byte(s.Config.MQTTQoS), false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return errors.New("推送发布超时")
	}
	return token.Error()
}

// sendEmail 邮件通道
// 实际邮件投递由独立的邮件网关消费日志队列完成，这里只做交接记录
func (s *DispatcherService) sendEmail(alert *models.Alert) error {
	recipients := "全体用户"
	if alert.Recipient == models.RecipientSpecific {
		recipients = fmt.Sprintf("%d 名 %s 等级用户", len(alert.UserIDs), alert.RecipientGrade)
	}
	logger.Info("[EMAIL] 已交接邮件通知 [%s] %s -> %s", alert.ID, alert.Title, recipients)
	return nil
}
