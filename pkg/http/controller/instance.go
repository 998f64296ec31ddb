package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/vessel-io/agent/pkg/agent"
	"github.com/vessel-io/agent/pkg/dto"
	"go.uber.org/zap"
)

// Start is called when the cluster scheduler places an instance on this
// node. It blocks until the startup workflow's continuation has run, the
// response carries the single error-or-none outcome.
func Start(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.BindJSON(&raw); err != nil {
		zap.S().Errorw("start bind json error", "err", err)
		c.JSON(400, dto.StartResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	sp := opentracing.GlobalTracer().StartSpan("instance-start")
	defer sp.Finish()

	ins, err := agent.GetAgent().Submit(raw)
	if err != nil {
		c.JSON(400, dto.StartResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	sp.SetTag("instance_id", ins.InstanceID())

	wait := make(chan error, 1)
	ins.Start(func(err error) {
		wait <- err
	})
	if err := <-wait; err != nil {
		c.JSON(500, dto.StartResponse{
			Success:    false,
			Message:    err.Error(),
			InstanceID: ins.InstanceID(),
			State:      string(ins.State()),
		})
		return
	}
	c.JSON(200, dto.StartResponse{
		Success:    true,
		Message:    "ok",
		InstanceID: ins.InstanceID(),
		State:      string(ins.State()),
	})
}

// List reports the live instance table
func List(c *gin.Context) {
	a := agent.GetAgent()
	infos := []dto.InstanceInfo{}
	for _, ins := range a.List() {
		infos = append(infos, dto.InstanceInfo{
			InstanceID:      ins.InstanceID(),
			InstanceIndex:   ins.InstanceIndex(),
			ApplicationID:   ins.ApplicationID(),
			ApplicationName: ins.ApplicationName(),
			RuntimeName:     ins.RuntimeName(),
			State:           string(ins.State()),
		})
	}
	c.JSON(200, dto.ListResponse{
		Success:   true,
		Instances: infos,
		States:    a.Snapshot(),
	})
}
