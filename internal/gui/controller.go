package gui

import (
	"sync"

	"image-enhancer/internal/display"
	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/metrics"
	"image-enhancer/internal/models"
	"image-enhancer/internal/opencv/safe"
	"image-enhancer/internal/pipeline"

	"fyne.io/fyne/v2"
)

// DisplayFactory builds the Display used for results at the given
// resolution. A blocking Display must return once stop is closed.
type DisplayFactory func(resolution int, stop <-chan struct{}) display.Display

// Controller connects the view to the pipeline. The loaded image and the
// latest result are owned here and released on Clear and Shutdown.
type Controller struct {
	view       *View
	source     *pipeline.ImageSource
	logger     logger.Logger
	recorder   metrics.Recorder
	newDisplay DisplayFactory

	mu               sync.RWMutex
	settings         *Settings
	image            *safe.Mat
	result           *safe.Mat
	processingActive bool

	worker   sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

func NewController(params models.ConfigurationParams, log logger.Logger, recorder metrics.Recorder, newDisplay DisplayFactory) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	if recorder == nil {
		recorder = metrics.Nop()
	}
	if newDisplay == nil {
		newDisplay = func(int, <-chan struct{}) display.Display { return display.Nop() }
	}

	return &Controller{
		source:     pipeline.NewImageSource(log),
		logger:     log,
		recorder:   recorder,
		newDisplay: newDisplay,
		settings:   NewSettings(params),
		stop:       make(chan struct{}),
	}
}

func (c *Controller) SetView(view *View) {
	c.view = view
}

func (c *Controller) LoadImage() {
	c.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError(err)
			return
		}
		if reader == nil {
			return
		}

		c.updateStatus("Loading image...")

		go func() {
			defer reader.Close()

			mat, loadErr := c.source.LoadFromReader(reader)
			if loadErr != nil {
				c.handleError(loadErr)
				c.updateStatus("Ready")
				return
			}

			c.replaceImage(mat)
			c.showOriginal(mat)
			c.updateStatus("Image loaded")

			c.logger.Info("Controller", "image loaded", map[string]interface{}{
				"path":   reader.URI().Path(),
				"width":  mat.Cols(),
				"height": mat.Rows(),
			})
		}()
	})
}

// ProcessImage runs the operation behind a quick selection entry on the
// loaded image, shows the result and keeps it for saving.
func (c *Controller) ProcessImage(selection string) {
	op, err := QuickOperation(selection)
	if err != nil {
		c.handleError(err)
		return
	}

	img, cfg, err := c.beginProcessing(op)
	if err != nil {
		c.handleError(err)
		return
	}
	if img == nil {
		c.logger.Debug("Controller", "processing already active", nil)
		return
	}

	c.onUI(func() { c.view.SetProcessing(true) })
	c.updateStatus("Processing image...")

	go func() {
		defer c.worker.Done()
		defer img.Close()
		defer c.endProcessing()

		result, err := c.process(op, cfg, img)
		if err != nil {
			c.handleError(err)
			c.updateStatus("Processing failed")
			return
		}

		if c.stopped() {
			result.Close()
			return
		}

		c.replaceResult(result)
		c.updateStatus("Processing completed")
	}()
}

// beginProcessing reserves the worker slot and returns a private copy of the
// loaded image, so Clear, a new load or Shutdown never free pixels the
// worker is reading. A nil image with a nil error means a worker is busy.
func (c *Controller) beginProcessing(op pipeline.Operation) (*safe.Mat, models.PipelineConfiguration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.processingActive || c.stopped() {
		return nil, models.PipelineConfiguration{}, nil
	}
	if c.image == nil {
		return nil, models.PipelineConfiguration{}, apperrors.NewMissingImage(op.String())
	}

	cfg, err := c.settings.Configuration()
	if err != nil {
		return nil, models.PipelineConfiguration{}, err
	}

	img, err := c.image.Clone()
	if err != nil {
		return nil, models.PipelineConfiguration{}, apperrors.NewProcessingError("copying loaded image", err)
	}

	c.processingActive = true
	c.worker.Add(1)
	return img, cfg, nil
}

func (c *Controller) endProcessing() {
	c.mu.Lock()
	c.processingActive = false
	c.mu.Unlock()

	c.onUI(func() { c.view.SetProcessing(false) })
}

func (c *Controller) process(op pipeline.Operation, cfg models.PipelineConfiguration, img *safe.Mat) (*safe.Mat, error) {
	processor := pipeline.NewProcessor(nil, cfg,
		pipeline.WithLogger(c.logger),
		pipeline.WithRecorder(c.recorder),
	)

	viewer := display.NewViewer(c.newDisplay(cfg.Display().Resolution, c.stop), true, c.logger)
	out, runErr := processor.Run(op, img)
	result, err := viewer.Present(op.Title(), out, runErr)
	if err != nil && result != nil && apperrors.IsType(err, apperrors.ErrorTypeDisplay) {
		c.logger.Warning("Controller", "result could not be shown", map[string]interface{}{
			"error": err.Error(),
		})
		return result, nil
	}
	return result, err
}

// Clear releases the loaded image and the result.
func (c *Controller) Clear() {
	if c.isProcessing() {
		return
	}

	c.replaceImage(nil)
	c.replaceResult(nil)

	c.onUI(func() {
		c.view.ClearImages()
		c.view.SetStatus("Ready")
	})
}

func (c *Controller) SaveImage() {
	c.mu.RLock()
	result := c.result
	quality := c.settings.Params().Display.Quality
	c.mu.RUnlock()

	if result == nil {
		c.handleError(apperrors.NewMissingImage("save"))
		return
	}

	c.view.ShowSaveDialog(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			c.handleError(err)
			return
		}
		if writer == nil {
			return
		}

		go func() {
			defer writer.Close()

			c.mu.RLock()
			defer c.mu.RUnlock()

			if saveErr := pipeline.SaveToWriter(writer, c.result, "", quality); saveErr != nil {
				c.handleError(saveErr)
				return
			}
			c.updateStatus("Image saved")
			c.logger.Info("Controller", "image saved", map[string]interface{}{
				"path": writer.URI().Path(),
			})
		}()
	})
}

// UpdateSetting stores a value from the Settings tab.
func (c *Controller) UpdateSetting(name string, value interface{}) {
	c.mu.Lock()
	err := c.settings.Apply(name, value)
	c.mu.Unlock()

	if err != nil {
		c.handleError(err)
		return
	}

	c.logger.Debug("Controller", "setting updated", map[string]interface{}{
		"setting": name,
		"value":   value,
	})
}

// Shutdown dismisses open previews, waits for a running worker and then
// releases the loaded image and the result.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	c.stopOnce.Do(func() { close(c.stop) })
	c.mu.Unlock()

	c.worker.Wait()

	c.replaceImage(nil)
	c.replaceResult(nil)
	c.logger.Info("Controller", "shutdown completed", nil)
}

func (c *Controller) replaceImage(mat *safe.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.image != nil {
		c.image.Close()
	}
	if mat != nil && c.stopped() {
		mat.Close()
		mat = nil
	}
	c.image = mat
}

func (c *Controller) replaceResult(mat *safe.Mat) {
	c.mu.Lock()
	previous := c.result
	c.result = mat
	resolution := c.settings.Params().Display.Resolution
	c.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	if mat == nil {
		return
	}

	preview, err := pipeline.Preview(mat, resolution)
	if err != nil {
		c.handleError(err)
		return
	}
	c.onUI(func() {
		c.view.SetResultImage(preview)
	})
}

func (c *Controller) showOriginal(mat *safe.Mat) {
	c.mu.RLock()
	resolution := c.settings.Params().Display.Resolution
	c.mu.RUnlock()

	preview, err := pipeline.Preview(mat, resolution)
	if err != nil {
		c.handleError(err)
		return
	}
	c.onUI(func() {
		c.view.SetOriginalImage(preview)
	})
}

func (c *Controller) updateStatus(status string) {
	c.onUI(func() {
		c.view.SetStatus(status)
	})
}

func (c *Controller) handleError(err error) {
	c.logger.Error("Controller", err, nil)

	c.onUI(func() {
		c.view.ShowError(err)
	})
}

func (c *Controller) isProcessing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.processingActive
}

func (c *Controller) stopped() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

// onUI runs fn on the fyne goroutine. Without a view there is nothing to update.
func (c *Controller) onUI(fn func()) {
	if c.view == nil {
		return
	}
	fyne.Do(fn)
}
