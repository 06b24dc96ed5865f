package server

// Controller page served at /. Kept as a single small document so the whole
// UI survives on a flaky link.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>LED Matrix Controller</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #1a1a2e 0%, #16213e 50%, #0f3460 100%);
            min-height: 100vh;
            display: flex;
            justify-content: center;
            align-items: center;
            padding: 20px;
            color: #fff;
        }
        .container {
            background: rgba(255, 255, 255, 0.1);
            border-radius: 20px;
            padding: 40px;
            max-width: 500px;
            width: 100%;
        }
        h1 { text-align: center; margin-bottom: 10px; }
        .subtitle { color: rgba(255, 255, 255, 0.7); text-align: center; margin-bottom: 30px; }
        input[type="text"] {
            width: 100%;
            padding: 15px;
            margin-bottom: 20px;
            border: 2px solid rgba(255, 255, 255, 0.2);
            border-radius: 10px;
            background: rgba(255, 255, 255, 0.1);
            color: #fff;
            font-size: 1.2em;
        }
        button {
            width: 100%;
            padding: 15px;
            background: linear-gradient(135deg, #e94560, #ff6b6b);
            border: none;
            border-radius: 10px;
            color: #fff;
            font-size: 1.1em;
            cursor: pointer;
            text-transform: uppercase;
        }
        .clear { margin-top: 10px; background: rgba(255, 255, 255, 0.15); }
    </style>
</head>
<body>
    <div class="container">
        <h1>LED Matrix</h1>
        <p class="subtitle">88x88 RGB Display Controller</p>
        <form action="/text" method="get">
            <input type="text" name="msg" placeholder="Type your message..." maxlength="14">
            <button type="submit">Display Text</button>
        </form>
        <form action="/clear" method="get">
            <button class="clear" type="submit">Clear</button>
        </form>
    </div>
</body>
</html>
`
