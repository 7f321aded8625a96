package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 最后一次文件事件之后等待多久再重载
const reloadDebounce = 100 * time.Millisecond

// LevelConfigWatcher 监听关卡配置文件，变化后重新加载并校验
//
// 监听的是文件所在目录，以便兼容编辑器“写临时文件再重命名”的保存方式。
// 重载成功的配置发送到 Updates，失败发送到 Errors；两者都是带缓冲的通道，
// 宿主循环每帧非阻塞地读取即可。
type LevelConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	Updates chan *LevelConfig
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchLevelConfig 开始监听 path
func WatchLevelConfig(path string) (*LevelConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &LevelConfigWatcher{
		watcher: w,
		path:    abs,
		Updates: make(chan *LevelConfig, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	log.Printf("[LevelConfigWatcher] Watching %s", abs)
	return watcher, nil
}

// Close 停止监听并关闭通道，可重复调用
func (w *LevelConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *LevelConfigWatcher) run() {
	defer close(w.done)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.publishError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *LevelConfigWatcher) reload() {
	cfg, err := LoadLevelConfig(w.path)
	if err != nil {
		log.Printf("[LevelConfigWatcher] Reload failed: %v", err)
		w.publishError(err)
		return
	}
	log.Printf("[LevelConfigWatcher] Reloaded %s", w.path)
	select {
	case w.Updates <- cfg:
	case <-w.closeCh:
	}
}

func (w *LevelConfigWatcher) publishError(err error) {
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	default:
		// 通道已满，丢弃
	}
}

// Drain 非阻塞地处理所有已到达的更新和错误
// 通道关闭后返回 false
func (w *LevelConfigWatcher) Drain(onUpdate func(*LevelConfig), onError func(error)) bool {
	for {
		select {
		case cfg, ok := <-w.Updates:
			if !ok {
				return false
			}
			onUpdate(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return false
			}
			onError(err)
		default:
			return true
		}
	}
}
