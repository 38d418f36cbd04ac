package app

import (
	"image-enhancer/internal/display"
	"image-enhancer/internal/gui"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/metrics"
	"image-enhancer/internal/models"
	"image-enhancer/internal/shutdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName         = "Image Processing App"
	AppID           = "com.imageprocessing.enhancer"
	MinWindowWidth  = 800
	MinWindowHeight = 400
)

// Application owns the fyne app, its main window and the shutdown order of
// everything created for it.
type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *gui.View
	controller *gui.Controller
	shutdown   *shutdown.Manager
	logger     logger.Logger
}

func NewApplication(params models.ConfigurationParams, log logger.Logger, recorder metrics.Recorder) (*Application, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	window.Resize(fyne.NewSize(MinWindowWidth, MinWindowHeight))
	window.SetFixedSize(false)
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"window_width":  MinWindowWidth,
		"window_height": MinWindowHeight,
		"resolution":    params.Display.Resolution,
	})

	controller := gui.NewController(params, log, recorder, func(resolution int, stop <-chan struct{}) display.Display {
		return gui.NewPreviewDisplay(fyneApp, resolution, stop)
	})
	view := gui.NewView(window, params)
	view.SetController(controller)
	controller.SetView(view)

	manager := shutdown.NewManager(log)
	manager.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		shutdown:   manager,
		logger:     log,
	}

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

// Run blocks until the main window is closed.
func (a *Application) Run() error {
	a.shutdown.Listen()

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})

	go func() {
		<-a.shutdown.Done()
		fyne.Do(a.fyneApp.Quit)
	}()

	a.view.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	return nil
}
