package mse

import (
	"sync"
	"time"

	"github.com/nacos-group/nacos-sdk-go/vo"

	"github.com/ninja0404/pump-signal/pkg/config/source"
)

type watcher struct {
	mseClient   *mse
	contentChan chan string
	exit        chan struct{}
	once        sync.Once
}

func newWatcher(mseInstance *mse) (source.Watcher, error) {
	w := &watcher{
		mseClient:   mseInstance,
		contentChan: make(chan string, 1),
		exit:        make(chan struct{}),
	}

	err := mseInstance.client.ListenConfig(vo.ConfigParam{
		DataId: mseInstance.config.DataID,
		Group:  mseInstance.config.Group,
		OnChange: func(namespace, group, dataId, data string) {
			// 只保留最新一次变更
			select {
			case <-w.contentChan:
			default:
			}
			select {
			case w.contentChan <- data:
			case <-w.exit:
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *watcher) Next() (*source.ChangeSet, error) {
	select {
	case data := <-w.contentChan:
		cs := &source.ChangeSet{
			Format:    mseFormat,
			Source:    w.mseClient.String(),
			Timestamp: time.Now(),
			Data:      []byte(data),
		}
		cs.Checksum = cs.Sum()
		return cs, nil
	case <-w.exit:
		return nil, source.ErrWatcherStopped
	}
}

func (w *watcher) Stop() error {
	w.once.Do(func() {
		close(w.exit)
	})
	return w.mseClient.client.CancelListenConfig(vo.ConfigParam{
		DataId: w.mseClient.config.DataID,
		Group:  w.mseClient.config.Group,
	})
}
