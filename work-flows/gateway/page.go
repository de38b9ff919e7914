package gateway

const pageTemplate = `<!DOCTYPE html>
<html lang="th">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.View.Title}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Noto Sans Thai', sans-serif;
            background: #f5f5f5;
            height: 100vh;
            display: flex;
            overflow: hidden;
        }

        .sidebar {
            width: 300px;
            background: white;
            border-right: 1px solid #e0e0e0;
            display: flex;
            flex-direction: column;
        }

        .sidebar-header {
            padding: 20px;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
        }

        .sidebar-content {
            padding: 20px;
        }

        .section-title {
            font-size: 14px;
            font-weight: 600;
            color: #333;
            margin: 15px 0 8px;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .form-select {
            width: 100%;
            padding: 10px;
            border: 2px solid #e0e0e0;
            border-radius: 8px;
            font-size: 14px;
            background: white;
        }

        .main {
            flex: 1;
            display: flex;
            gap: 20px;
            padding: 20px;
            overflow: hidden;
        }

        .video-col {
            flex: 3;
        }

        .chat-col {
            flex: 2;
            display: flex;
            flex-direction: column;
            min-width: 0;
        }

        h2 {
            margin-bottom: 12px;
            color: #333;
        }

        video {
            width: 100%;
            border-radius: 8px;
            background: black;
        }

        .info {
            padding: 14px;
            border-radius: 8px;
            background: #e8f0fe;
            color: #1a4fa0;
        }

        .error {
            padding: 10px 14px;
            border-radius: 8px;
            background: #fdecea;
            color: #b3261e;
            margin-bottom: 10px;
        }

        .chat-container {
            height: 500px;
            overflow-y: auto;
            background: white;
            border: 1px solid #e0e0e0;
            border-radius: 8px;
            padding: 12px;
            margin-bottom: 10px;
        }

        .message {
            display: flex;
            gap: 8px;
            margin-bottom: 10px;
            line-height: 1.5;
        }

        .message.user .bubble {
            background: #eef2ff;
        }

        .bubble {
            background: #f3f3f3;
            padding: 8px 12px;
            border-radius: 8px;
            white-space: pre-wrap;
        }

        .chat-form {
            display: flex;
            gap: 8px;
        }

        .chat-form input {
            flex: 1;
            padding: 10px;
            border: 2px solid #e0e0e0;
            border-radius: 8px;
            font-size: 14px;
        }

        button {
            padding: 10px 16px;
            border: none;
            border-radius: 8px;
            background: #667eea;
            color: white;
            cursor: pointer;
        }

        button:disabled {
            opacity: 0.6;
            cursor: wait;
        }

        .secondary {
            background: #999;
            margin-top: 15px;
            width: 100%;
        }
    </style>
</head>
<body>
    <div class="sidebar">
        <div class="sidebar-header">
            <h2>🎬 Video Controls</h2>
        </div>
        <div class="sidebar-content">
            <div class="section-title">Select Subject</div>
            <select id="subjectSelect" class="form-select">
                {{range .View.Subjects}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
                {{end}}
            </select>
            <div class="section-title">Select Lesson</div>
            <select id="lessonSelect" class="form-select">
                {{range .View.Lessons}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
                {{end}}
            </select>
            <button id="resetButton" class="secondary">Reset chat</button>
            <button id="exportButton" class="secondary">Export transcript</button>
        </div>
    </div>

    <div class="main">
        <div class="video-col">
            <h2>Video Player</h2>
            <div id="videoArea"></div>
        </div>
        <div class="chat-col">
            <h2>AI Tutor Chat</h2>
            <div id="errorArea"></div>
            <div id="chatContainer" class="chat-container"></div>
            <form id="chatForm" class="chat-form">
                <input id="chatInput" type="text" placeholder="Ask about the video..." autocomplete="off">
                <button id="sendButton" type="submit">Send</button>
            </form>
        </div>
    </div>

    <script>
        let view = {{.View}};

        function escapeHtml(text) {
            const div = document.createElement('div');
            div.textContent = text;
            return div.innerHTML;
        }

        function render(next) {
            view = next;
            document.title = view.title;

            const lessonSelect = document.getElementById('lessonSelect');
            lessonSelect.innerHTML = '';
            (view.lessons || []).forEach(lesson => {
                const opt = document.createElement('option');
                opt.value = lesson.name;
                opt.textContent = lesson.name;
                opt.selected = lesson.selected;
                lessonSelect.appendChild(opt);
            });
            document.getElementById('subjectSelect').value = view.subject || '';

            const videoArea = document.getElementById('videoArea');
            if (view.video_ready) {
                const current = videoArea.querySelector('video');
                if (!current || current.dataset.src !== view.video_url) {
                    videoArea.innerHTML = '';
                    const video = document.createElement('video');
                    video.controls = true;
                    video.dataset.src = view.video_url;
                    video.src = view.video_url;
                    video.onerror = () => {
                        fetch(view.video_url).then(r => r.json()).then(data => {
                            showError(data.message || 'Streaming error');
                        }).catch(() => showError('Streaming error'));
                    };
                    videoArea.appendChild(video);
                }
            } else {
                videoArea.innerHTML = '<div class="info">' + escapeHtml(view.info || '') + '</div>';
            }

            const chat = document.getElementById('chatContainer');
            chat.innerHTML = '';
            (view.transcript || []).forEach(entry => appendMessage(entry.role, entry.avatar, entry.text));
            chat.scrollTop = chat.scrollHeight;

            showError(view.error || '');
        }

        function appendMessage(role, avatar, text) {
            const chat = document.getElementById('chatContainer');
            const row = document.createElement('div');
            row.className = 'message ' + role;
            row.innerHTML = '<span>' + avatar + '</span><div class="bubble">' + escapeHtml(text) + '</div>';
            chat.appendChild(row);
            chat.scrollTop = chat.scrollHeight;
        }

        function showError(message) {
            const area = document.getElementById('errorArea');
            area.innerHTML = message ? '<div class="error">' + escapeHtml(message) + '</div>' : '';
        }

        async function post(url, body) {
            const res = await fetch(url, {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify(body || {})
            });
            return res.json();
        }

        async function select(subject, lesson) {
            const data = await post('/api/select', {subject: subject, lesson: lesson});
            if (data.view) render(data.view);
            if (!data.success && data.message) showError(data.message);
        }

        document.getElementById('subjectSelect').addEventListener('change', e => {
            select(e.target.value, '');
        });

        document.getElementById('lessonSelect').addEventListener('change', e => {
            select(document.getElementById('subjectSelect').value, e.target.value);
        });

        document.getElementById('chatForm').addEventListener('submit', async e => {
            e.preventDefault();
            const input = document.getElementById('chatInput');
            const button = document.getElementById('sendButton');
            const message = input.value;
            if (!message.trim()) return;

            appendMessage('user', '👤', message);
            input.value = '';
            button.disabled = true;
            button.textContent = 'Analyzing...';
            try {
                const data = await post('/api/chat', {message: message});
                if (data.view) render(data.view);
                if (data.success && data.content) {
                    const last = (data.view.transcript || []).slice(-1)[0];
                    if (!last || last.text !== data.content) appendMessage('assistant', '🤖', data.content);
                }
                if (!data.success) showError(data.message);
            } catch (err) {
                showError('API Error: ' + err);
            } finally {
                button.disabled = false;
                button.textContent = 'Send';
            }
        });

        document.getElementById('resetButton').addEventListener('click', async () => {
            const data = await post('/api/reset');
            if (data.view) render(data.view);
        });

        document.getElementById('exportButton').addEventListener('click', async () => {
            const data = await post('/api/export');
            showError(data.success ? '' : data.message);
            if (data.success) alert('Saved to ' + data.path);
        });

        render(view);
    </script>
</body>
</html>`
